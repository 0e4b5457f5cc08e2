package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oxflash/tool/models"
	"github.com/oxflash/tool/services"
)

func TestFetchNativeBalance_ConvertsLamports(t *testing.T) {
	chain := new(MockChainReader)
	owner := solana.NewWallet().PublicKey()
	chain.On("GetBalance", mock.Anything, owner).Return(uint64(2_500_000_000), nil)

	agg := services.NewBalanceAggregator(chain, new(MockMetadataSource))
	b, err := agg.FetchNativeBalance(context.Background(), owner.String())

	require.NoError(t, err)
	assert.Equal(t, 2.5, b.NativeAmount)
}

func TestFetchNativeBalance_ChainError(t *testing.T) {
	chain := new(MockChainReader)
	owner := solana.NewWallet().PublicKey()
	chain.On("GetBalance", mock.Anything, owner).Return(uint64(0), errors.New("429 too many requests"))

	agg := services.NewBalanceAggregator(chain, new(MockMetadataSource))
	_, err := agg.FetchNativeBalance(context.Background(), owner.String())
	assert.ErrorIs(t, err, services.ErrChainQueryFailed)

	_, err = agg.FetchNativeBalance(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, services.ErrChainQueryFailed)
}

// TestFetchTokenHoldings_SkipsFailedMetadata: A, B, C com falha só em B devolve A e C, em ordem
func TestFetchTokenHoldings_SkipsFailedMetadata(t *testing.T) {
	chain := new(MockChainReader)
	meta := new(MockMetadataSource)
	owner := solana.NewWallet().PublicKey()

	chain.On("GetTokenAccountsByOwner", mock.Anything, owner).Return([]models.RawTokenAccount{
		{Mint: "A", UIAmount: 1},
		{Mint: "B", UIAmount: 2},
		{Mint: "C", UIAmount: 3},
	}, nil)
	meta.On("Lookup", mock.Anything, "A").Return(models.TokenMetadata{Name: "Alpha"}, nil)
	meta.On("Lookup", mock.Anything, "B").Return(models.TokenMetadata{}, services.ErrMetadataUnavailable)
	meta.On("Lookup", mock.Anything, "C").Return(models.TokenMetadata{Name: "Gamma"}, nil)

	agg := services.NewBalanceAggregator(chain, meta)
	holdings, err := agg.FetchTokenHoldings(context.Background(), owner.String())

	require.NoError(t, err)
	assert.Equal(t, []models.TokenHolding{
		{MintIdentifier: "A", UIAmount: 1, DisplayName: "Alpha"},
		{MintIdentifier: "C", UIAmount: 3, DisplayName: "Gamma"},
	}, holdings)
	meta.AssertExpectations(t)
}

func TestFetchTokenHoldings_OrderIgnoresCompletionOrder(t *testing.T) {
	chain := new(MockChainReader)
	meta := new(MockMetadataSource)
	owner := solana.NewWallet().PublicKey()

	chain.On("GetTokenAccountsByOwner", mock.Anything, owner).Return([]models.RawTokenAccount{
		{Mint: "slow", UIAmount: 10},
		{Mint: "fast", UIAmount: 20},
		{Mint: "slow", UIAmount: 30},
		{Mint: "unnamed", UIAmount: 40},
	}, nil)

	fastDone := make(chan struct{})
	meta.On("Lookup", mock.Anything, "slow").
		Run(func(mock.Arguments) { <-fastDone }).
		Return(models.TokenMetadata{Name: "Slow"}, nil).Once()
	meta.On("Lookup", mock.Anything, "fast").
		Run(func(mock.Arguments) { close(fastDone) }).
		Return(models.TokenMetadata{Name: "Fast"}, nil).Once()
	meta.On("Lookup", mock.Anything, "unnamed").Return(models.TokenMetadata{Name: "  "}, nil).Once()

	agg := services.NewBalanceAggregator(chain, meta)
	holdings, err := agg.FetchTokenHoldings(context.Background(), owner.String())

	require.NoError(t, err)
	require.Len(t, holdings, 3)
	assert.Equal(t, "slow", holdings[0].MintIdentifier)
	assert.Equal(t, "fast", holdings[1].MintIdentifier)
	assert.Equal(t, 30.0, holdings[2].UIAmount)
	meta.AssertExpectations(t)
}

func TestFetchTokenHoldings_ChainError(t *testing.T) {
	chain := new(MockChainReader)
	meta := new(MockMetadataSource)
	owner := solana.NewWallet().PublicKey()
	chain.On("GetTokenAccountsByOwner", mock.Anything, owner).Return(nil, errors.New("timeout"))

	_, err := services.NewBalanceAggregator(chain, meta).FetchTokenHoldings(context.Background(), owner.String())
	assert.ErrorIs(t, err, services.ErrChainQueryFailed)
	meta.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestComputeFiatValue(t *testing.T) {
	cases := []struct {
		name    string
		balance float64
		rate    *models.ConversionRate
		want    float64
	}{
		{"cotacao", 2.5, &models.ConversionRate{FiatPerUnit: 150}, 375},
		{"arredonda", 1.23456, &models.ConversionRate{FiatPerUnit: 10}, 12.35},
		{"sem cotacao", 4, nil, 0},
		{"cotacao zero", 4, &models.ConversionRate{}, 0},
		{"saldo zero", 0, &models.ConversionRate{FiatPerUnit: 99}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.ComputeFiatValue(models.Balance{NativeAmount: tc.balance}, tc.rate)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
