package auctionapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/clients"
	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

// Client is the typed REST client for the auction server's admin API.
type Client struct {
	*clients.BaseClient
}

// New creates a client rooted at baseURL, e.g. http://localhost:5000/api.
func New(baseURL string) *Client {
	return &Client{
		BaseClient: clients.NewBaseClient(baseURL),
	}
}

// envelope is the server's standard JSON response shape. Every endpoint wraps
// its payload in one of these with a success flag and a human message.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Players []models.Player `json:"players"`
	Teams   []models.Team   `json:"teams"`
	Stats   *models.Stats   `json:"stats"`
	Team    *models.Team    `json:"team"`
}

// decode unmarshals a response body into the envelope.
func decode(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	return &env, nil
}

// wrapErr surfaces the server's own message when one is present in an error
// response body, falling back to the transport error otherwise.
func wrapErr(op string, err error) error {
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) {
		var env envelope
		if jsonErr := json.Unmarshal(statusErr.Body, &env); jsonErr == nil && env.Message != "" {
			return fmt.Errorf("%s: %s", op, env.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// multipartBody assembles a multipart form with string fields plus an
// optional file part. A nil file reader skips the file part entirely.
func multipartBody(fields map[string]string, fileField, fileName string, file io.Reader) (string, *bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return "", nil, fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	if file != nil {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return "", nil, fmt.Errorf("failed to copy file into form: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to finalize multipart form: %w", err)
	}
	return w.FormDataContentType(), buf, nil
}
