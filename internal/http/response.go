package http

import (
	"log"
	"net/http"

	"brainhints/backend/internal/httpjson"
)

type APIError struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	httpjson.Write(w, status, v)
}

func Fail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, APIError{Message: msg})
}

// failErr maps err with the domain mapper. Server-side failures are logged and hidden.
func failErr(w http.ResponseWriter, r *http.Request, err error, mapper func(error) (int, string)) {
	status, msg := mapper(err)
	if status >= 500 {
		log.Printf("[API] %s %s: %v", r.Method, r.URL.Path, err)
		msg = "internal error"
	}
	Fail(w, status, msg)
}

// decode reads a JSON body and answers 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpjson.Read(w, r, dst); err != nil {
		Fail(w, 400, "invalid json: "+err.Error())
		return false
	}
	return true
}
