// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func TestRouterDuplicateEndpoint(t *testing.T) {
	require := require.New(t)
	r := newRouter()
	handler := http.NotFoundHandler()

	require.NoError(r.AddRouter("", "/rpc", handler))
	require.Error(r.AddRouter("", "/rpc", handler))
	require.NoError(r.AddRouter("", "/metrics", handler))

	_, err := r.GetHandler("", "/rpc")
	require.NoError(err)
	_, err = r.GetHandler("", "/ws")
	require.ErrorIs(err, errUnknownBaseURL)
}

func TestFilterInvalidHosts(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		allowedHosts []string
		host         string
		expected     int
	}{
		{
			name:         "wildcard",
			allowedHosts: []string{"*"},
			host:         "example.com",
			expected:     http.StatusOK,
		},
		{
			name:         "allowed",
			allowedHosts: []string{"localhost"},
			host:         "LOCALHOST:9650",
			expected:     http.StatusOK,
		},
		{
			name:         "ip",
			allowedHosts: []string{"localhost"},
			host:         "127.0.0.1:9650",
			expected:     http.StatusOK,
		},
		{
			name:         "rejected",
			allowedHosts: []string{"localhost"},
			host:         "example.com",
			expected:     http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			filterInvalidHosts(ok, tt.allowedHosts).ServeHTTP(rec, req)
			require.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestServerDispatch(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	s, err := New("", logging.NoLog{}, listener, NewDefaultHTTPConfig(), []string{"*"}, []string{"*"}, time.Second)
	require.NoError(err)
	require.NoError(s.AddRoute(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}), "", "/ping"))

	errs := make(chan error, 1)
	go func() {
		errs <- s.Dispatch()
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/ping", s.Addr()))
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal("pong", string(body))

	require.NoError(s.Shutdown())
	err = <-errs
	require.True(errors.Is(err, http.ErrServerClosed))
}
