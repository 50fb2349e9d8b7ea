package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, tokens []string, msg Message) error
}

// RelaySender posts FCM-style multicast payloads to an HTTP push relay.
type RelaySender struct {
	url    string
	token  string
	client *http.Client
}

func NewRelaySender(url, token string) *RelaySender {
	return &RelaySender{
		url:    strings.TrimSpace(url),
		token:  strings.TrimSpace(token),
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type relayRequest struct {
	Tokens       []string `json:"registration_ids"`
	Notification Message  `json:"notification"`
}

func (s *RelaySender) Send(ctx context.Context, tokens []string, msg Message) error {
	if len(tokens) == 0 {
		return nil
	}

	payload, err := json.Marshal(relayRequest{Tokens: tokens, Notification: msg})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push relay: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push relay: status %d", resp.StatusCode)
	}
	return nil
}

type NoopSender struct{}

func (NoopSender) Send(context.Context, []string, Message) error { return nil }
