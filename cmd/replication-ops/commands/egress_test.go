package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func TestCheckAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	mux.HandleFunc("/down", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "down")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	urls := []string{server.URL + "/ok", server.URL + "/down", "http://127.0.0.1:0/unreachable"}
	results, err := checkAll(context.Background(), server.Client(), urls, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")

	if assert.Len(t, results, 3) {
		assert.Equal(t, EgressResult{URL: urls[0], StatusCode: http.StatusOK, Body: "ok"}, results[0])
		assert.Equal(t, EgressResult{URL: urls[1], StatusCode: http.StatusBadGateway, Body: "down"}, results[1])
		assert.Equal(t, urls[2], results[2].URL)
		assert.Zero(t, results[2].StatusCode)
		assert.NotEmpty(t, results[2].Error)
	}
}

func TestCheckAll_AllReachable(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		peak     int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()

		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	urls := []string{server.URL + "/a", server.URL + "/b", server.URL + "/c", server.URL + "/d"}
	results, err := checkAll(context.Background(), server.Client(), urls, 1)

	// status codes are relayed, never judged
	assert.NoError(t, err)
	assert.Equal(t, 1, peak)
	for i, result := range results {
		assert.Equal(t, urls[i], result.URL)
		assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
		assert.Empty(t, result.Error)
	}
}

func TestEgressCommand_FailedCheckExitsWithError(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.Nop()
	app := &cli.App{
		Writer:   &out,
		Commands: []*cli.Command{EgressCommand(&logger)},
	}

	err := app.Run([]string{"replication-ops", "egress", "check", "--url", "http://127.0.0.1:0/unreachable", "--output", "json"})
	assert.Error(t, err)
	assert.Contains(t, out.String(), `"url": "http://127.0.0.1:0/unreachable"`)
}
