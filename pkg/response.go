package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
}

// DataResponse is the envelope of successful read responses.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func WriteTextResponseOK(w http.ResponseWriter, message string) {
	writeBody(w, ContentType.Text, []byte(message), http.StatusOK)
}

// WriteJSON marshals v and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, v any, statusCode int) {
	respBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response %T: %s", v, err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	writeBody(w, ContentType.JSON, respBytes, statusCode)
}

func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, DataResponse{Success: true, Data: data}, http.StatusOK)
}

func writeBody(w http.ResponseWriter, contentType string, body []byte, statusCode int) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		log.Errorf("failed to write %d byte response: %s", len(body), err)
	}
}
