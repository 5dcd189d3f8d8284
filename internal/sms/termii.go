package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const termiiDefaultBaseURL = "https://v3.api.termii.com"

// maxResponseBytes bounds how much of a provider response we buffer.
const maxResponseBytes = 1 << 20

// TermiiClient sends SMS through the Termii HTTP JSON API. It holds no state
// beyond its credentials and is safe for concurrent use.
type TermiiClient struct {
	apiKey  string
	baseURL string
	client  http.Client
}

// NewTermiiClient creates a TermiiClient. If baseURL is empty, the Termii
// production API is used.
func NewTermiiClient(apiKey, baseURL string) *TermiiClient {
	if baseURL == "" {
		baseURL = termiiDefaultBaseURL
	}
	return &TermiiClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers one SMS. Transport failures surface as *NetworkError;
// anything the provider rejects, including semantic errors hidden behind an
// HTTP 200, surfaces as *GatewayError. No retries happen here; retry policy
// belongs to the caller.
func (c *TermiiClient) Send(ctx context.Context, to, message, senderID string, channel Channel, msgType MessageType) (*SendResult, error) {
	if to == "" {
		return nil, fmt.Errorf("%w: destination phone is required", ErrInvalidRequest)
	}
	if message == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrInvalidRequest)
	}
	if senderID == "" {
		return nil, fmt.Errorf("%w: sender ID is required", ErrInvalidRequest)
	}
	if !channel.Valid() {
		return nil, fmt.Errorf("%w: channel %q (allowed: generic, dnd, whatsapp, voice)", ErrInvalidRequest, channel)
	}
	if msgType == "" {
		msgType = TypePlain
	}
	if !msgType.Valid() {
		return nil, fmt.Errorf("%w: message type %q (allowed: plain, unicode, encrypted)", ErrInvalidRequest, msgType)
	}

	reqBody, err := json.Marshal(struct {
		APIKey  string `json:"api_key"`
		To      string `json:"to"`
		From    string `json:"from"`
		SMS     string `json:"sms"`
		Type    string `json:"type"`
		Channel string `json:"channel"`
	}{
		APIKey:  c.apiKey,
		To:      to,
		From:    senderID,
		SMS:     message,
		Type:    string(msgType),
		Channel: string(channel),
	})
	if err != nil {
		return nil, fmt.Errorf("termii: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sms/send", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("termii: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	raw, status, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if gerr := gatewayFailure(raw, status); gerr != nil {
		return nil, gerr
	}

	return &SendResult{
		MessageID: messageID(raw),
		Balance:   floatField(raw, "balance"),
		Raw:       raw,
	}, nil
}

// SenderID is one registered sender identity on the Termii account.
type SenderID struct {
	SenderID  string `json:"sender_id"`
	Status    string `json:"status"`
	Company   string `json:"company"`
	Country   string `json:"country"`
	CreatedAt string `json:"created_at"`
}

// SenderIDPage holds the sender IDs returned by the account query.
type SenderIDPage struct {
	SenderIDs []SenderID
	Raw       map[string]any
}

// FetchSenderIDs queries the sender IDs registered on the account, optionally
// filtered by name and status. An empty response body means no sender IDs
// exist yet and yields an empty page, not an error.
func (c *TermiiClient) FetchSenderIDs(ctx context.Context, senderID, status string) (*SenderIDPage, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	if senderID != "" {
		q.Set("sender_id", senderID)
	}
	if status != "" {
		q.Set("status", status)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/sender-id?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("termii: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return &SenderIDPage{}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: snippet(body)}
	}
	if gerr := gatewayFailure(raw, resp.StatusCode); gerr != nil {
		return nil, gerr
	}

	page := &SenderIDPage{Raw: raw}
	// Termii has shipped both "data" and "content" as the list key.
	for _, key := range []string{"data", "content"} {
		items, ok := raw[key].([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			entry, err := json.Marshal(item)
			if err != nil {
				continue
			}
			var sid SenderID
			if json.Unmarshal(entry, &sid) == nil {
				page.SenderIDs = append(page.SenderIDs, sid)
			}
		}
		break
	}
	return page, nil
}

// do executes the request and decodes the body into a generic map. Empty and
// non-JSON bodies are normalized into *GatewayError rather than bubbling up a
// decode failure.
func (c *TermiiClient) do(req *http.Request) (map[string]any, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, &NetworkError{Err: err}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, 0, &GatewayError{
			StatusCode: resp.StatusCode,
			Message:    "empty response body (HTTP " + resp.Status + ")",
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, &GatewayError{StatusCode: resp.StatusCode, Message: snippet(body)}
	}
	return raw, resp.StatusCode, nil
}

// gatewayFailure inspects a decoded response for provider-reported errors.
// Termii can return semantic failures with a 200 transport status, so the
// body is checked before the HTTP status.
func gatewayFailure(raw map[string]any, httpStatus int) *GatewayError {
	code := responseCode(raw)
	if stringField(raw, "status") == "error" || !okCode(code) {
		return &GatewayError{
			StatusCode: httpStatus,
			Code:       code,
			Message:    bestMessage(raw, httpStatus),
		}
	}
	if httpStatus >= 300 {
		return &GatewayError{
			StatusCode: httpStatus,
			Code:       code,
			Message:    bestMessage(raw, httpStatus),
		}
	}
	return nil
}

// okCode reports whether a provider response code counts as success.
// Accepted: "ok", 200, or no code at all.
func okCode(code string) bool {
	return code == "" || code == "ok" || code == "200"
}

func responseCode(raw map[string]any) string {
	switch v := raw["code"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}

// bestMessage extracts the most useful error description available: the
// body's message field, its error field, or the bare HTTP status.
func bestMessage(raw map[string]any, httpStatus int) string {
	if m := stringField(raw, "message"); m != "" {
		return m
	}
	if m := stringField(raw, "error"); m != "" {
		return m
	}
	return "HTTP " + http.StatusText(httpStatus)
}

// messageID tolerates the field-name spellings Termii has used across API
// versions.
func messageID(raw map[string]any) string {
	if id := stringField(raw, "message_id"); id != "" {
		return id
	}
	if id := stringField(raw, "messageId"); id != "" {
		return id
	}
	if data, ok := raw["data"].(map[string]any); ok {
		return stringField(data, "message_id")
	}
	return ""
}

func stringField(raw map[string]any, key string) string {
	if raw == nil {
		return ""
	}
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

func floatField(raw map[string]any, key string) float64 {
	if v, ok := raw[key].(float64); ok {
		return v
	}
	return 0
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
