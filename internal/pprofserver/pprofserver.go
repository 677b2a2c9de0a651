// Package pprofserver exposes pprof on a loopback-only listener so the
// profiling endpoints are never reachable from the outside.
package pprofserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
)

func newServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	return mux
}

// Launch starts the pprof server on the IPv6 loopback address and the given
// port, e.g. ":6060".
func Launch(port string, logger *slog.Logger) {
	go func() {
		addr := fmt.Sprintf("[::1]%s", port)
		logger.Info("starting pprof server", "addr", addr)
		server := &http.Server{Addr: addr, Handler: newServeMux()}
		if err := server.ListenAndServe(); err != nil {
			logger.Error("pprof server stopped", "error", err)
		}
	}()
}
