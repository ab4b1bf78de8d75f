package httpjson

import (
	"encoding/json"
	"net/http"
)

const maxBody = 1 << 20

func Write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Read decodes a JSON body into dst, rejecting unknown fields and bodies over 1MB.
func Read(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type apiError struct {
	Message string `json:"message"`
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, apiError{Message: msg})
}
