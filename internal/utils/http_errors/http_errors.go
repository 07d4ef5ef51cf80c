package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSONError writes the failure envelope: a message plus an optional
// field-keyed detail map.
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	WriteJSONErrorFields(w, status, message, map[string][]string{"detail": {message}})
}

func WriteJSONErrorFields(w http.ResponseWriter, status int, message string, fields map[string][]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"message": message,
		"errors":  fields,
	}

	_ = json.NewEncoder(w).Encode(response)
}

// WriteJSONData writes the success envelope.
func WriteJSONData(w http.ResponseWriter, status int, message string, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"message": message,
		"data":    data,
	}

	return json.NewEncoder(w).Encode(response)
}
