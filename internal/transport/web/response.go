package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodySize = 1 << 20

var ErrBody = errors.New("invalid request body")

type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	//nolint:errchkjson,exhaustruct
	_ = writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		s.l.LogErrorf("Could not write response: %v", err.Error())
	}
}

// decodeBody reads a single JSON object and rejects unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("request body is empty: %w", ErrBody)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("request body too large: %w", ErrBody)
		default:
			return fmt.Errorf("%v: %w", err.Error(), ErrBody)
		}
	}

	if decoder.More() {
		return fmt.Errorf("body must contain a single JSON object: %w", ErrBody)
	}

	return nil
}
