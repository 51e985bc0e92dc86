package cluster

import (
	"fmt"
	"net/http"
)

// NewBasicHealthHandler returns a liveness handler: it only confirms the
// process is up and serving HTTP.
func NewBasicHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Service is alive.")
	}
}
