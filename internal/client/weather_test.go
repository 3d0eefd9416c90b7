package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(url string) *weatherClient {
	return &weatherClient{
		url:        url,
		httpClient: &http.Client{Timeout: time.Second},
		now:        time.Now,
	}
}

func TestWeatherClient_Today(t *testing.T) {
	today := time.Now().Format("01-02")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"date":"00-00","weather":"Rainy"},{"date":%q,"weather":"Sunny"}]`, today)
	}))
	defer server.Close()

	weather, err := newTestClient(server.URL).Today(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Sunny", weather)
}

func TestWeatherClient_Today_NoDataForToday(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"date":"00-00","weather":"Rainy"}]`)
	}))
	defer server.Close()

	weather, err := newTestClient(server.URL).Today(context.Background())
	assert.Error(t, err)
	assert.Empty(t, weather)
	assert.Contains(t, err.Error(), "no weather data")
}

func TestWeatherClient_Today_EmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Today(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no data")
}

func TestWeatherClient_Today_FeedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Today(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}
