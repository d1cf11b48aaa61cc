package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful response (200 OK) with JSON data
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteCreated writes a successful creation response (201 Created) with JSON data
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, data)
}

// WriteNoContent writes a successful response with no content (204 No Content)
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteErrorMessage writes a JSON error response with a custom message
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// WriteBadRequest writes a bad request error (400)
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusBadRequest, message)
}

// WriteInternalError writes an internal server error response (500)
func WriteInternalError(w http.ResponseWriter, err error) {
	WriteErrorMessage(w, http.StatusInternalServerError, err.Error())
}

// AuthError is the 401 body shape the APS services return.
type AuthError struct {
	DeveloperMessage string `json:"developerMessage"`
	ErrorCode        string `json:"errorCode"`
}

// AuthErrorCode is the error code carried by every 401 response.
const AuthErrorCode = "AUTH-001"

// WriteAuthError writes a 401 response with the APS auth error body.
func WriteAuthError(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusUnauthorized, AuthError{
		DeveloperMessage: message,
		ErrorCode:        AuthErrorCode,
	})
}

// WriteReason writes a JSON body of the form {"reason": "..."} with the
// given status; the OSS and Model Derivative services report missing
// resources this way.
func WriteReason(w http.ResponseWriter, status int, format string, args ...interface{}) {
	WriteJSON(w, status, map[string]string{
		"reason": fmt.Sprintf(format, args...),
	})
}

// WriteJSONAPIError writes a jsonapi-style error envelope, used by the Data
// Management endpoints.
func WriteJSONAPIError(w http.ResponseWriter, status int, title, detail string) {
	entry := map[string]string{
		"status": fmt.Sprintf("%d", status),
		"title":  title,
	}
	if detail != "" {
		entry["detail"] = detail
	}
	WriteJSON(w, status, map[string]interface{}{
		"jsonapi": map[string]string{"version": "1.0"},
		"errors":  []interface{}{entry},
	})
}

// WriteNotImplemented writes the 501 body emitted when no example response
// could be resolved for an operation.
func WriteNotImplemented(w http.ResponseWriter, operationID, method, path string) {
	WriteJSON(w, http.StatusNotImplemented, map[string]interface{}{
		"message":      fmt.Sprintf("No example response available for %s %s", method, path),
		"operation_id": operationID,
	})
}
