package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/expense-auth/internal/mocks"
)

func TestHTTPServer_Address(t *testing.T) {
	assert.Equal(t, ":3000", NewHTTPServer(http.NotFoundHandler(), ":3000").Address())
}

func TestHTTPServer_Start_ListenError(t *testing.T) {
	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(nil, errors.New("port in use"))

	err := NewHTTPServer(http.NotFoundHandler(), ":0").Start(sec)
	assert.ErrorContains(t, err, "port in use")
}

func TestHTTPServer_ServesAndStops(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(ln, nil)

	srv := NewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}), ":0")

	done := make(chan error, 1)
	go func() { done <- srv.Start(sec) }()

	url := "http://" + ln.Addr().String()
	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ = io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "pong", string(body))

	require.NoError(t, srv.Stop(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("server did not stop")
	}
}
