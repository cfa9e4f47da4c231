package httpserver

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"
)

// Healthz pings the database so the platform health check catches a dead
// pool, not just a live process.
func Healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func Start(addr string, mux *http.ServeMux) error {
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
