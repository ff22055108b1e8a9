package domain

import (
	"encoding/json"
	"time"
)

// SocketEventName event name on the socket channel
type SocketEventName string

const (
	// SendMessage client -> server, relay a message to another member
	SendMessage SocketEventName = "sendMessage"
	// ReceiveMessage server -> client, a relayed message
	ReceiveMessage SocketEventName = "receiveMessage"
	// SocketError server -> client, the last frame could not be handled
	SocketError SocketEventName = "error"
)

// SocketEvent frame exchanged on the websocket
type SocketEvent struct {
	Event SocketEventName `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// SendMessagePayload data of sendMessage
type SendMessagePayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// ReceiveMessagePayload data of receiveMessage
type ReceiveMessagePayload struct {
	From    string    `json:"from"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// SocketErrorPayload data of error
type SocketErrorPayload struct {
	Message string `json:"message"`
}

// NewSocketEvent encode data under name
func NewSocketEvent(name SocketEventName, data interface{}) (SocketEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return SocketEvent{}, err
	}
	return SocketEvent{Event: name, Data: raw}, nil
}

// UserChannel pub/sub channel delivering socket events to one member
func UserChannel(memberID string) string {
	return "chat:user:" + memberID
}
