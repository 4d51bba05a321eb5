// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, JSONResponse{Success: true, Data: data})
}

func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, JSONResponse{Success: true})
}

func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, JSONResponse{Success: false, Error: message})
}

func NotFoundJSON(w http.ResponseWriter, resource string) {
	JSONError(w, http.StatusNotFound, resource+" not found")
}

func InternalServerErrorJSON(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	JSONError(w, http.StatusInternalServerError, "internal server error")
}
