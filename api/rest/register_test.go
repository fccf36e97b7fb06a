package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restapi "github.com/hedisam/chainfeed/api/rest"
)

type echoRequest struct {
	ChainID string `json:"chainId"`
	Note    string `json:"note"`
}

type echoResponse struct {
	ChainID string `json:"chainId"`
	Note    string `json:"note"`
}

func TestRegisterFunc(t *testing.T) {
	mux := http.NewServeMux()
	restapi.RegisterFunc(logrus.New(), mux, http.MethodGet, "/chains/{chainId}", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		switch req.ChainID {
		case "teapot":
			return nil, restapi.NewErrf(http.StatusTeapot, "I'm a %s", req.ChainID)
		case "broken":
			return nil, errors.New("dummy error")
		}
		return &echoResponse{ChainID: req.ChainID, Note: req.Note}, nil
	})
	restapi.RegisterFunc(logrus.New(), mux, http.MethodPut, "/chains/{chainId}", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{ChainID: req.ChainID, Note: req.Note}, nil
	})

	tests := map[string]struct {
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		"path value": {
			method:         http.MethodGet,
			path:           "/chains/43114",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"chainId":"43114","note":""}`,
		},
		"body and path value": {
			method:         http.MethodPut,
			path:           "/chains/43114",
			body:           `{"chainId":"ignored","note":"hello"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"chainId":"43114","note":"hello"}`,
		},
		"invalid body": {
			method:         http.MethodPut,
			path:           "/chains/43114",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
		"api error": {
			method:         http.MethodGet,
			path:           "/chains/teapot",
			expectedStatus: http.StatusTeapot,
			expectedBody:   `{"message":"I'm a teapot"}`,
		},
		"unexpected error": {
			method:         http.MethodGet,
			path:           "/chains/broken",
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Internal server error"}`,
		},
		"method not allowed": {
			method:         http.MethodDelete,
			path:           "/chains/43114",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)
			require.Equal(t, test.expectedStatus, rec.Code)
			if test.expectedBody == "" {
				return
			}
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, test.expectedBody, rec.Body.String())
		})
	}
}

func TestErrJSON(t *testing.T) {
	err := restapi.NewErrf(http.StatusNotFound, "chain %s not found", "99")
	assert.Equal(t, "chain 99 not found", err.Error())

	b, jsonErr := json.Marshal(err)
	require.NoError(t, jsonErr)
	assert.JSONEq(t, `{"message":"chain 99 not found"}`, string(b))
}
