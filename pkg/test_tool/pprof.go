package testtool

import (
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof on http.DefaultServeMux

	"fitness_chat_service/pkg/config"
	"fitness_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// PprofAddr pprof only listens on loopback
const PprofAddr = "127.0.0.1:6060"

// StartPprof serve pprof on PprofAddr when enabled, never in production
func StartPprof(enabled bool) {
	if !enabled {
		return
	}
	if config.IsProduction() {
		logger.Log.Info("Production environment detected, pprof is disabled.")
		return
	}

	go func() {
		logger.Log.Info("Starting pprof server", zap.String("addr", PprofAddr))
		if err := http.ListenAndServe(PprofAddr, nil); err != nil {
			logger.Log.Error("pprof server failed", zap.Error(err))
		}
	}()
}

// curl http://127.0.0.1:6060/debug/pprof/
// go tool pprof http://127.0.0.1:6060/debug/pprof/profile?seconds=30
// go tool pprof http://127.0.0.1:6060/debug/pprof/heap
