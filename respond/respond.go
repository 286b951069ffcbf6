// Package respond writes the JSON response envelope shared by every
// armature component: {success, message, data|details, timestamp}.
package respond

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the wire format for all JSON responses. Data is populated
// on success, Details on failure; the other is omitted.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
}

// timestamp formats the current time as "YYYY-MM-DD HH:MM:SS".
func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// JSON writes a success envelope with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// Error writes a failure envelope with the given HTTP status code.
// details carries structured failure context (e.g. a field→messages map
// from validation); it never carries internal error state.
func Error(w http.ResponseWriter, status int, message string, details any) {
	write(w, status, Envelope{
		Success:   false,
		Message:   message,
		Details:   details,
		Timestamp: timestamp(),
	})
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, message, data)
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, message, data)
}

// BadRequest writes a 400 failure envelope.
func BadRequest(w http.ResponseWriter, message string, details any) {
	Error(w, http.StatusBadRequest, message, details)
}

// NotFound writes a 404 failure envelope.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message, nil)
}

// Unprocessable writes a 422 failure envelope, the default status for
// validation failures outside the CRUD path.
func Unprocessable(w http.ResponseWriter, message string, details any) {
	Error(w, http.StatusUnprocessableEntity, message, details)
}

// Internal writes a 500 failure envelope.
func Internal(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message, nil)
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
