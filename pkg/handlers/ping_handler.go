package handlers

import "net/http"

// PingHandler - liveness probe for the single HTTP surface.
func PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
