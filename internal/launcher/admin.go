package launcher

import (
	"net/http"

	"github.com/atlas-128/convertDecimaltoBase32/internal/metrics"
)

// adminMux serves the supervisor's own collectors. The worker gauges and
// exit counters live in this process; without this listener they would be
// registered but never scrapeable.
func adminMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func newAdminServer(addr string) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: adminMux(),
	}
}
