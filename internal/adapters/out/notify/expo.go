package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// expoBatchSize is the maximum number of messages per Expo API request.
const expoBatchSize = 100

// expoTokenPrefixes mark valid Expo device tokens; anything else registered
// on an account is skipped.
var expoTokenPrefixes = []string{"ExponentPushToken[", "ExpoPushToken["}

// ExpoPushSender delivers push messages through the Expo push API.
type ExpoPushSender struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewExpoPushSender creates a sender posting to the given Expo endpoint.
func NewExpoPushSender(url string, logger *slog.Logger) *ExpoPushSender {
	return &ExpoPushSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.With("component", "expo_push"),
	}
}

type expoMessage struct {
	To    []string `json:"to"`
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Sound string   `json:"sound"`
}

// Send posts the message to every valid Expo token in batches.
func (s *ExpoPushSender) Send(ctx context.Context, tokens []string, title, body string) error {
	valid := filterExpoTokens(tokens)
	if len(valid) == 0 {
		return nil
	}

	for start := 0; start < len(valid); start += expoBatchSize {
		end := start + expoBatchSize
		if end > len(valid) {
			end = len(valid)
		}
		if err := s.post(ctx, expoMessage{
			To:    valid[start:end],
			Title: title,
			Body:  body,
			Sound: "default",
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *ExpoPushSender) post(ctx context.Context, msg expoMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("expo push returned %s", resp.Status)
	}

	s.logger.DebugContext(ctx, "push batch delivered", "recipients", len(msg.To))
	return nil
}

func filterExpoTokens(tokens []string) []string {
	valid := make([]string, 0, len(tokens))
	for _, token := range tokens {
		for _, prefix := range expoTokenPrefixes {
			if strings.HasPrefix(token, prefix) {
				valid = append(valid, token)
				break
			}
		}
	}
	return valid
}
