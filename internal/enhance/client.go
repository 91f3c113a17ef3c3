// Package enhance talks to the remote service that turns a rough sketch into
// a finished image.
package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"time"

	"SketchBoard/internal/export"
)

var (
	ErrRemote     = errors.New("enhancement service error")
	ErrEmptyImage = errors.New("enhancement service returned no image")
)

// maxResponse bounds the body read from the service.
const maxResponse = 32 << 20

type Request struct {
	Image  image.Image
	Style  string
	Prompt string
}

type Result struct {
	Image       image.Image
	Description string
}

type Client struct {
	url  string
	http *http.Client
	log  *slog.Logger
}

func NewClient(url string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

type requestBody struct {
	Image  string `json:"image"`
	Style  string `json:"style,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

type responseBody struct {
	EnhancedImage string `json:"enhanced_image"`
	Description   string `json:"description"`
	Error         string `json:"error"`
}

// Enhance uploads req.Image and returns the service's rendition. Failures
// reported by the service wrap ErrRemote.
func (c *Client) Enhance(ctx context.Context, req Request) (*Result, error) {
	encoded, err := export.Base64PNG(req.Image)
	if err != nil {
		return nil, fmt.Errorf("enhance: %w", err)
	}
	payload, err := json.Marshal(requestBody{Image: encoded, Style: req.Style, Prompt: req.Prompt})
	if err != nil {
		return nil, fmt.Errorf("enhance: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("enhance: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("enhance: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, fmt.Errorf("enhance: read response: %w", err)
	}
	c.log.Debug("enhance response", "status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(start))

	var body responseBody
	if err := json.Unmarshal(raw, &body); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %s", ErrRemote, resp.Status)
		}
		return nil, fmt.Errorf("enhance: decode response: %w", err)
	}
	if body.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrRemote, body.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrRemote, resp.Status)
	}
	if body.EnhancedImage == "" {
		return nil, ErrEmptyImage
	}

	img, err := export.DecodeBase64PNG(body.EnhancedImage)
	if err != nil {
		return nil, fmt.Errorf("enhance: %w", err)
	}
	return &Result{Image: img, Description: body.Description}, nil
}
