package rest

import (
	"errors"
	"net/http"
	"strings"
)

const maxFormBytes = 1 << 20

// ParseForm accepts both urlencoded and multipart bodies.
func ParseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormBytes)
	}
	return r.ParseForm()
}

// FormValue reports whether the body carried the field at all, unlike
// r.PostFormValue which cannot tell "missing" from "empty".
func FormValue(r *http.Request, key string) (string, bool) {
	vals, ok := r.PostForm[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

var errBadBool = errors.New("invalid boolean")

// ParseFormBool understands the usual HTML form spellings of a boolean.
func ParseFormBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "on", "yes", "y":
		return true, nil
	case "0", "f", "false", "off", "no", "n":
		return false, nil
	default:
		return false, errBadBool
	}
}
