package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oxflash/tool/models"
)

// TokenMetadataSource obtém o nome de exibição de um mint.
type TokenMetadataSource interface {
	Lookup(ctx context.Context, mint string) (models.TokenMetadata, error)
}

// SolscanMetadataClient consulta a API token/meta da Solscan.
type SolscanMetadataClient struct {
	baseURL string
	client  *http.Client
}

func NewSolscanMetadataClient(baseURL string, client *http.Client) *SolscanMetadataClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SolscanMetadataClient{baseURL: baseURL, client: client}
}

// Lookup faz GET ?tokenAddress=<mint>.
func (c *SolscanMetadataClient) Lookup(ctx context.Context, mint string) (models.TokenMetadata, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return models.TokenMetadata{}, fmt.Errorf("%w: %w", ErrMetadataUnavailable, err)
	}
	q := u.Query()
	q.Set("tokenAddress", mint)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.TokenMetadata{}, fmt.Errorf("%w: %w", ErrMetadataUnavailable, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return models.TokenMetadata{}, fmt.Errorf("%w: %w", ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.TokenMetadata{}, fmt.Errorf("%w: status %d para %s", ErrMetadataUnavailable, resp.StatusCode, mint)
	}

	var meta models.TokenMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return models.TokenMetadata{}, fmt.Errorf("%w: %w", ErrMetadataUnavailable, err)
	}
	return meta, nil
}
