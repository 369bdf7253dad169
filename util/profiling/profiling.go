package profiling

import (
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
	"github.com/halsimplicity/halsimplicity/util/panics"
)

// Handler returns the pprof handlers, with "/" redirecting to the index.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/", http.RedirectHandler("/debug/pprof/", http.StatusSeeOther))
	return mux
}

// Start starts the profiling server
func Start(port string, log *logger.Logger) {
	spawn := panics.GoroutineWrapperFunc(log)
	spawn("profiling.Start", func() {
		listenAddr := net.JoinHostPort("", port)
		log.Infof("Profile server listening on %s", listenAddr)
		log.Errorf("Profile server stopped: %s", http.ListenAndServe(listenAddr, Handler()))
	})
}
