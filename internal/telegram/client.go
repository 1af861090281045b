// Package telegram sends notifications through the Telegram Bot API and keeps
// the bot credentials persisted.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"taskboard/internal/metrics"
)

// DefaultBaseURL is the public Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// ErrNetwork wraps transport and decoding failures.
var ErrNetwork = errors.New("telegram: network error")

// APIError is returned when the Bot API answers ok=false.
type APIError struct {
	Description string
}

// Error reports the Bot API description.
func (e *APIError) Error() string {
	if e.Description == "" {
		return "telegram: message rejected"
	}
	return "telegram: " + e.Description
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// Client posts messages to the Bot API. It does not retry.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient returns a client for baseURL. A nil httpClient uses
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, logger: logger}
}

// SendMessage delivers text as HTML to chatID.
func (c *Client) SendMessage(ctx context.Context, token, chatID, text string) (err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.IntegrationCalls.WithLabelValues("telegram", outcome).Inc()
	}()

	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	endpoint := c.baseURL + "/bot" + token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The URL embeds the token; keep it out of the returned error.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: invalid response (status %d): %v", ErrNetwork, resp.StatusCode, err)
	}
	if !result.OK {
		c.logger.Warn("telegram rejected message", slog.String("chat_id", chatID), slog.String("description", result.Description))
		return &APIError{Description: result.Description}
	}
	return nil
}
