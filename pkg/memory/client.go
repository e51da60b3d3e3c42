// Package memory is a thin client for the memory server's chat API. Every
// operation is a single round trip: build the request, send it, surface the
// server's answer. State lives entirely on the server.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Config carries the settings shared by every call.
type Config struct {
	// BaseURL of the memory server, e.g. "http://localhost:8080".
	BaseURL string
	// Timeout for a single round trip. Zero means the transport default.
	Timeout time.Duration
}

// Client issues requests against a memory server. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	http   *resty.Client
	logger logrus.FieldLogger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying resty transport.
func WithHTTPClient(httpClient *resty.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

// WithLogger routes the client's diagnostics to the given logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a client bound to the configured server.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		http:   resty.New(),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.SetBaseURL(cfg.BaseURL)
	if cfg.Timeout > 0 {
		c.http.SetTimeout(cfg.Timeout)
	}
	return c
}

// CreateChat registers a new chat for the given session and returns the
// server-assigned record.
func (c *Client) CreateChat(ctx context.Context, sessionID string) (*Chat, error) {
	const op = "create chat"
	c.logger.Debugf("creating chat for session %s", sessionID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"sessionId": sessionID}).
		Post("/chats")
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	if err := c.checkStatus(op, resp); err != nil {
		return nil, err
	}

	chat := &Chat{}
	if err := json.Unmarshal(resp.Body(), chat); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	c.logger.Debugf("chat created: %s", chat.ID)
	return chat, nil
}

// GetChat fetches a chat by its identifier.
func (c *Client) GetChat(ctx context.Context, chatID string) (*Chat, error) {
	const op = "get chat"

	resp, err := c.http.R().
		SetContext(ctx).
		Get("/chats/" + chatID)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	if err := c.checkStatus(op, resp); err != nil {
		return nil, err
	}

	chat := &Chat{}
	if err := json.Unmarshal(resp.Body(), chat); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return chat, nil
}

// ListChats fetches every chat known to the server.
func (c *Client) ListChats(ctx context.Context) ([]*Chat, error) {
	const op = "list chats"

	resp, err := c.http.R().
		SetContext(ctx).
		Get("/chats")
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	if err := c.checkStatus(op, resp); err != nil {
		return nil, err
	}

	var chats []*Chat
	if err := json.Unmarshal(resp.Body(), &chats); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return chats, nil
}

// AddMessages appends messages to a chat. Roles are validated locally so an
// invalid role is never transmitted.
func (c *Client) AddMessages(ctx context.Context, chatID string, messages []ChatMessage) error {
	const op = "add messages"
	c.logger.Debugf("adding %d messages to chat %s", len(messages), chatID)

	for _, message := range messages {
		if !message.Role.Valid() {
			return fmt.Errorf("%s: invalid message role %q", op, message.Role)
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"messages": messages}).
		Put("/chats/" + chatID + "/messages")
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	return c.checkStatus(op, resp)
}

// GetMessages fetches all messages of a chat, in server order.
func (c *Client) GetMessages(ctx context.Context, chatID string) ([]ChatMessage, error) {
	const op = "get messages"

	resp, err := c.http.R().
		SetContext(ctx).
		Get("/chats/" + chatID + "/messages")
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	if err := c.checkStatus(op, resp); err != nil {
		return nil, err
	}

	var messages []ChatMessage
	if err := json.Unmarshal(resp.Body(), &messages); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return messages, nil
}

// SetSummary stores a summary for a chat.
func (c *Client) SetSummary(ctx context.Context, chatID, summary string) error {
	const op = "set summary"
	c.logger.Debugf("setting summary on chat %s", chatID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"summary": summary}).
		Put("/chats/" + chatID + "/summary")
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	return c.checkStatus(op, resp)
}

// checkStatus converts any non-2xx response into a RequestError carrying the
// server's body text.
func (c *Client) checkStatus(op string, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	body := string(resp.Body())
	c.logger.Warnf("%s failed with status %d: %s", op, resp.StatusCode(), body)
	return &RequestError{Op: op, StatusCode: resp.StatusCode(), Body: body}
}
