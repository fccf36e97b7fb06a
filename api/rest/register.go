package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/sirupsen/logrus"
)

// Err is an error with the HTTP status it is served with.
type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func NewErrf(statusCode int, format string, args ...any) *Err {
	return &Err{
		StatusCode: statusCode,
		Message:    fmt.Sprintf(format, args...),
	}
}

func (e *Err) Error() string {
	return e.Message
}

// RegisterFunc serves fn on method and pattern. The request is decoded from the
// JSON body, if any, and from the path values named after its json tags.
// Errors other than *Err are served as internal errors.
func RegisterFunc[Req, Resp any](logger *logrus.Logger, mux *http.ServeMux, method, pattern string, fn func(ctx context.Context, req *Req) (*Resp, error)) {
	mux.HandleFunc(method+" "+pattern, func(w http.ResponseWriter, r *http.Request) {
		logger := logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		})

		req := new(Req)
		if r.Body != nil && r.ContentLength > 0 {
			err := json.NewDecoder(r.Body).Decode(req)
			if err != nil {
				logger.WithError(err).Warn("Failed to decode request body")
				writeError(logger, w, NewErrf(http.StatusBadRequest, "Invalid request body"))
				return
			}
		}
		setPathValues(r, req)

		resp, err := fn(r.Context(), req)
		if err != nil {
			apiErr := &Err{}
			if !errors.As(err, &apiErr) {
				logger.WithError(err).Error("Handler returned an unexpected error")
				apiErr = NewErrf(http.StatusInternalServerError, "Internal server error")
			}
			writeError(logger, w, apiErr)
			return
		}

		writeJSON(logger, w, http.StatusOK, resp)
	})
}

// setPathValues copies the path values into the string fields of req whose json
// names match a wildcard of the route.
func setPathValues(r *http.Request, req any) {
	v := reflect.ValueOf(req).Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Type.Kind() != reflect.String || !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		value := r.PathValue(name)
		if value != "" {
			v.Field(i).SetString(value)
		}
	}
}

func writeError(logger *logrus.Entry, w http.ResponseWriter, err *Err) {
	writeJSON(logger, w, err.StatusCode, err)
}

func writeJSON(logger *logrus.Entry, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.WithError(err).Error("Failed to write response")
	}
}
