package validateapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrInvalidURL        = errors.New("validateapi: url is required")
	ErrRequestFailed     = errors.New("validateapi: request failed")
	ErrMalformedResponse = errors.New("validateapi: malformed response")
	ErrUnexpectedStatus  = errors.New("validateapi: unexpected http status")
)

// MalformedResponseKey is the stable message key reported to users when
// the service answers something the client cannot read.
const MalformedResponseKey = "api_response_mal_formatted"

// Status of a validation response.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// FieldError is one per-field finding of the remote service. Value is a
// ready message, not a key; the service owns its wording.
type FieldError struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Response is the service's answer for one payload.
type Response struct {
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	FieldsError []FieldError `json:"fieldsError"`
}

// OK reports whether the service considered the payload valid.
func (r *Response) OK() bool { return r.Status == StatusOK }

type request struct {
	QRCode string `json:"qrCode"`
}

// Client validates payloads against a remote service. Zero value is not
// usable; use New.
type Client struct {
	httpClient *http.Client
}

// New creates a client with a default HTTP client. The timeout bounds
// the whole exchange; pass 0 to keep the 30s default.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// NewWithClient creates a client with a custom HTTP client, for tests or
// custom transports.
func NewWithClient(client *http.Client) *Client {
	if client == nil {
		return New(0)
	}
	return &Client{httpClient: client}
}

// Validate posts the raw payload to url and decodes the answer. The
// returned error is ErrMalformedResponse when the body cannot be decoded
// or lacks the required envelope fields.
func (c *Client) Validate(ctx context.Context, url, rawPayload string) (*Response, error) {
	if url == "" {
		return nil, ErrInvalidURL
	}

	body, err := json.Marshal(request{QRCode: rawPayload})
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	if len(raw) == 0 {
		return nil, ErrMalformedResponse
	}

	// Decode through an envelope with pointer fields so an absent status
	// or message is distinguishable from an empty one.
	var envelope struct {
		Status      *string      `json:"status"`
		Message     *string      `json:"message"`
		FieldsError []FieldError `json:"fieldsError"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	if envelope.Status == nil || envelope.Message == nil {
		return nil, ErrMalformedResponse
	}

	return &Response{
		Status:      *envelope.Status,
		Message:     *envelope.Message,
		FieldsError: envelope.FieldsError,
	}, nil
}
