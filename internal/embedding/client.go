package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tessnimetteib/cv-generator-project2/pkg/config"

	"go.uber.org/zap"
)

// Client talks to an OpenAI-compatible /embeddings endpoint. The reference
// deployment serves all-MiniLM-L6-v2 (D=384) behind this protocol.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	http      *http.Client
	logger    *zap.Logger
}

func NewClient(cfg *config.EmbeddingConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		dimension: cfg.Dimension,
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

// Dimension returns the system-wide embedding dimensionality.
func (c *Client) Dimension() int { return c.dimension }

type embedRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed requests an embedding for text. Transport and provider failures
// are wrapped in ErrUnavailable; a response with the wrong dimensionality
// is rejected outright since it cannot be compared against stored entries.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Input: text, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("failed to encode embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(data))
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrUnavailable, err)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	vec := parsed.Data[0].Embedding
	if len(vec) != c.dimension {
		return nil, fmt.Errorf("embedding dimension mismatch: expected %d, got %d", c.dimension, len(vec))
	}

	c.logger.Debug("Generated query embedding",
		zap.Int("dimension", len(vec)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return vec, nil
}
