package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/oxflash/tool/models"
)

// BalanceAggregator junta o saldo nativo e os tokens de um endereço.
type BalanceAggregator struct {
	chain    ChainReader
	metadata TokenMetadataSource
}

func NewBalanceAggregator(chain ChainReader, metadata TokenMetadataSource) *BalanceAggregator {
	return &BalanceAggregator{chain: chain, metadata: metadata}
}

// FetchNativeBalance devolve o saldo em SOL.
func (a *BalanceAggregator) FetchNativeBalance(ctx context.Context, address string) (models.Balance, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return models.Balance{}, fmt.Errorf("%w: endereço inválido %q: %w", ErrChainQueryFailed, address, err)
	}
	lamports, err := a.chain.GetBalance(ctx, owner)
	if err != nil {
		return models.Balance{}, fmt.Errorf("%w: %w", ErrChainQueryFailed, err)
	}
	return models.Balance{NativeAmount: float64(lamports) / float64(solana.LAMPORTS_PER_SOL)}, nil
}

// FetchTokenHoldings lista os tokens do endereço que têm nome conhecido.
// As consultas de metadados rodam em paralelo, uma por mint distinto; tokens
// cujo nome não vem são omitidos. A ordem segue a resposta do RPC.
func (a *BalanceAggregator) FetchTokenHoldings(ctx context.Context, address string) ([]models.TokenHolding, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("%w: endereço inválido %q: %w", ErrChainQueryFailed, address, err)
	}
	accounts, err := a.chain.GetTokenAccountsByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChainQueryFailed, err)
	}

	names := a.lookupNames(ctx, accounts)

	holdings := make([]models.TokenHolding, 0, len(accounts))
	for _, acc := range accounts {
		name := names[acc.Mint]
		if name == "" {
			continue
		}
		holdings = append(holdings, models.TokenHolding{
			MintIdentifier: acc.Mint,
			UIAmount:       acc.UIAmount,
			DisplayName:    name,
		})
	}
	return holdings, nil
}

func (a *BalanceAggregator) lookupNames(ctx context.Context, accounts []models.RawTokenAccount) map[string]string {
	var mints []string
	seen := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		if !seen[acc.Mint] {
			seen[acc.Mint] = true
			mints = append(mints, acc.Mint)
		}
	}

	results := make([]string, len(mints))
	var wg sync.WaitGroup
	for i, mint := range mints {
		wg.Add(1)
		go func(i int, mint string) {
			defer wg.Done()
			meta, err := a.metadata.Lookup(ctx, mint)
			if err != nil {
				log.Printf("Metadados de %s indisponíveis: %v", mint, err)
				return
			}
			results[i] = strings.TrimSpace(meta.Name)
		}(i, mint)
	}
	wg.Wait()

	names := make(map[string]string, len(mints))
	for i, mint := range mints {
		names[mint] = results[i]
	}
	return names
}

// ComputeFiatValue é o valor fiat do saldo, arredondado a 2 casas; 0 sem cotação.
func ComputeFiatValue(balance models.Balance, rate *models.ConversionRate) float64 {
	return models.ComputeFiatValue(balance, rate)
}
