// Package httpjson пишет JSON-ответы и тела ошибок {"error": "..."}.
package httpjson

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// StatusClientClosedRequest клиент закрыл соединение до ответа (nginx 499).
const StatusClientClosedRequest = 499

type errorBody struct {
	Error string `json:"error"`
}

// Write пишет v в формате JSON с кодом status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("error encoding response", zap.Error(err))
	}
}

// Error пишет ответ вида {"error": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Error: msg})
}
