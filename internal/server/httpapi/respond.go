package httpapi

import (
	"encoding/json"
	"net/http"
)

// JSend-style response envelopes: "success" for fulfilled requests, "fail"
// for rejected ones (client's fault), "error" for server-side failures.
const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

type response struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, code int, status string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(response{Status: status, Data: data})
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, statusSuccess, data)
}

func writeFail(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, statusFail, data)
}

func writeError(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusInternalServerError, statusError, data)
}
