package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// writeJSON marshals the payload and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("level=error component=api msg=\"failed to encode response\" err=%v", err)
	}
}

// writeError writes a JSON error body with a client-facing message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// decodeJSON decodes a request body into dst, rejecting unknown trailing data.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// centsToDecimal converts a minor-unit balance to the decimal number the
// client expects.
func centsToDecimal(cents int64) float64 {
	return float64(cents) / 100
}
