package middleware

import (
	"encoding/json"
	"net/http"
)

func errorResponse(w http.ResponseWriter, status int, err error) {
	writeError(w, status, err.Error())
}

func unauthorizedResponse(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	js, err := json.MarshalIndent(map[string]any{"error": message}, "", "\t")
	if err != nil {
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(js, '\n'))
}
