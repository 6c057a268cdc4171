package httpserver_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pki2fa/pkg/httpserver"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
}

func waitReady(t *testing.T, url string) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServeUntilCancelled(t *testing.T) {
	t.Parallel()
	ln := listen(t)
	url := "http://" + ln.Addr().String()

	srv := httpserver.New(httpserver.WithShutdownTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln, okHandler()) }()
	waitReady(t, url)

	resp, err := http.Get(url)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancel")
	}

	_, err = http.Get(url)
	assert.Error(t, err)
}

func TestDrainsInFlightRequest(t *testing.T) {
	t.Parallel()
	ln := listen(t)
	url := "http://" + ln.Addr().String()

	started := make(chan struct{})
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			close(started)
			time.Sleep(100 * time.Millisecond)
		}
		_, _ = io.WriteString(w, "done")
	})

	srv := httpserver.New(httpserver.WithShutdownTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln, slow) }()
	waitReady(t, url)

	result := make(chan string, 1)
	go func() {
		resp, err := http.Get(url + "/slow")
		if err != nil {
			result <- err.Error()
			return
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		result <- string(b)
	}()

	<-started
	cancel()

	assert.Equal(t, "done", <-result)
	assert.NoError(t, <-done)
}

func TestShutdownTimeout(t *testing.T) {
	t.Parallel()
	ln := listen(t)
	url := "http://" + ln.Addr().String()

	release := make(chan struct{})
	defer close(release)
	started := make(chan struct{})
	stuck := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/stuck" {
			close(started)
			<-release
		}
	})

	srv := httpserver.New(httpserver.WithShutdownTimeout(50 * time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln, stuck) }()
	waitReady(t, url)

	go func() {
		if resp, err := http.Get(url + "/stuck"); err == nil {
			_ = resp.Body.Close()
		}
	}()
	<-started
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, httpserver.ErrShutdown)
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown timeout not enforced")
	}
}

func TestRunListenError(t *testing.T) {
	t.Parallel()
	ln := listen(t)
	defer ln.Close()

	srv := httpserver.New(httpserver.WithAddr(ln.Addr().String()))
	err := srv.Run(context.Background(), okHandler())
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestServeTwice(t *testing.T) {
	t.Parallel()
	srv := httpserver.New()
	ctx, cancel := context.WithCancel(context.Background())

	first := listen(t)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, first, okHandler()) }()
	waitReady(t, "http://"+first.Addr().String())

	err := srv.Serve(ctx, listen(t), okHandler())
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

	cancel()
	assert.NoError(t, <-done)
}

func TestShutdownBeforeServe(t *testing.T) {
	t.Parallel()
	srv := httpserver.New()
	assert.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	cfg := httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}
	assert.Len(t, cfg.Options(), 6)

	srv := httpserver.NewFromConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, nil) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
