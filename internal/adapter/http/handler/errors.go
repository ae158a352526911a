package handler

import "net/http"

func errorResponse(w http.ResponseWriter, status int, message any) {
	env := envelope{"error": message}

	// Fall back to an empty 500 if even the error body cannot be written.
	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(500)
	}
}

// failedValidationResponse returns 422 Unprocessable Entity: the request was
// well-formed but the contained instructions cannot be processed, and
// repeating it unchanged will fail the same way.
func failedValidationResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusUnprocessableEntity, message)
}

// badRequestResponse returns 400 Bad Request for malformed request syntax.
func badRequestResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusBadRequest, message)
}

// internalErrorResponse returns 500 Internal Server Error.
func internalErrorResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusInternalServerError, message)
}
