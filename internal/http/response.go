package http

import (
	"encoding/json"
	"net/http"
)

// WriteJSON serializa a resposta com o status informado.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError escreve o corpo de erro padrão `{"message": ...}`.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]any{"message": message})
}
