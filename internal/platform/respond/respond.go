package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"

	"github.com/janisto/hello-server/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-server/internal/platform/middleware"
)

const (
	msgNotFound            = "resource not found"
	msgInternalServerError = "internal server error"

	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"
)

// NotFoundHandler renders an RFC 9457 problem for unmatched routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, msgNotFound)
	}
}

// Recoverer converts handler panics into a 500 problem response. It re-panics
// http.ErrAbortHandler so net/http can abort the connection, and writes nothing
// when the handler already started the response.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				logging.LogError(r.Context(), "panic recovered", panicError(rec))
				if rw.wroteHeader {
					return
				}
				writeProblem(rw, r, http.StatusInternalServerError, msgInternalServerError)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

func panicError(rec any) error {
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}
	return fmt.Errorf("%w\n%s", err, debug.Stack())
}

// writeProblem negotiates JSON or CBOR from the Accept header and writes a
// problem document with the given status.
func writeProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := &huma.ErrorModel{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	contentType := contentTypeProblemJSON
	var (
		body []byte
		err  error
	)
	if selectFormat(r.Header.Get("Accept")) {
		contentType = contentTypeProblemCBOR
		body, err = cbor.Marshal(problem)
	} else {
		body, err = marshalJSON(problem)
	}
	if err != nil {
		logging.LogError(r.Context(), "failed to encode problem", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType)
	appmiddleware.AddVary(h, "Accept")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		logging.LogError(r.Context(), "failed to write problem", err)
	}
}

// marshalJSON encodes v without HTML escaping, matching huma's JSON format.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// responseWriter records whether the response has started.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
