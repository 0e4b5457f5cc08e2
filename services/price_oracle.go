package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/oxflash/tool/models"
)

// PriceOracle busca e guarda a cotação USD do ativo nativo.
type PriceOracle struct {
	baseURL string
	assetID string
	client  *http.Client

	mu   sync.RWMutex
	rate *models.ConversionRate
}

// NewPriceOracle cria o oráculo. baseURL segue o formato simple/price da CoinGecko.
func NewPriceOracle(baseURL, assetID string, client *http.Client) *PriceOracle {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &PriceOracle{baseURL: baseURL, assetID: assetID, client: client}
}

// FetchRate consulta a API e substitui a cotação guardada. Em caso de erro a
// cotação anterior continua disponível em Current.
func (o *PriceOracle) FetchRate(ctx context.Context) (models.ConversionRate, error) {
	u, err := url.Parse(o.baseURL)
	if err != nil {
		return models.ConversionRate{}, fmt.Errorf("%w: url inválida: %w", ErrOracleUnavailable, err)
	}
	q := u.Query()
	q.Set("ids", o.assetID)
	q.Set("vs_currencies", "usd")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.ConversionRate{}, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return models.ConversionRate{}, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.ConversionRate{}, fmt.Errorf("%w: status %d", ErrOracleUnavailable, resp.StatusCode)
	}

	var body map[string]struct {
		USD *float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.ConversionRate{}, fmt.Errorf("%w: resposta inválida: %w", ErrOracleUnavailable, err)
	}
	entry, ok := body[o.assetID]
	if !ok || entry.USD == nil || *entry.USD <= 0 {
		return models.ConversionRate{}, fmt.Errorf("%w: preço de %s ausente", ErrOracleUnavailable, o.assetID)
	}

	rate := models.ConversionRate{FiatPerUnit: *entry.USD, FetchedAt: time.Now()}
	o.mu.Lock()
	o.rate = &rate
	o.mu.Unlock()
	log.Printf("Cotação de %s atualizada: $%.4f", o.assetID, rate.FiatPerUnit)
	return rate, nil
}

// Current devolve a última cotação obtida, ou nil.
func (o *PriceOracle) Current() *models.ConversionRate {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.rate == nil {
		return nil
	}
	r := *o.rate
	return &r
}
