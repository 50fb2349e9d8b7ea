package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelaySender_Send(t *testing.T) {
	var got relayRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewRelaySender(srv.URL, "secret")
	err := s.Send(context.Background(), []string{"tok-1", "tok-2"}, Message{
		Title: "New booking",
		Body:  "Haircut at 09:30",
		Data:  map[string]string{"reference": "abc"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, []string{"tok-1", "tok-2"}, got.Tokens)
	assert.Equal(t, "New booking", got.Notification.Title)
	assert.Equal(t, "abc", got.Notification.Data["reference"])
}

func TestRelaySender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewRelaySender(srv.URL, "").Send(context.Background(), []string{"t"}, Message{Title: "x"})
	assert.ErrorContains(t, err, "status 502")
}

func TestRelaySender_NoTokensIsNoop(t *testing.T) {
	err := NewRelaySender("http://127.0.0.1:0", "").Send(context.Background(), nil, Message{})
	assert.NoError(t, err)
}
