package config_test

import (
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxflash/tool/config"
)

func TestLoad_Defaults(t *testing.T) {
	dest := solana.NewWallet().PublicKey()
	t.Setenv("FEE_DESTINATION", dest.String())

	cfg, err := config.Load("testdata/missing.env")

	require.NoError(t, err)
	assert.Equal(t, dest, cfg.FeeDestination)
	assert.Equal(t, config.DefaultFeeUSD, cfg.FeeUSD)
	assert.Equal(t, config.DefaultPriceAPIURL, cfg.PriceAPIURL)
	assert.Equal(t, config.DefaultConfirmTimeout, cfg.ConfirmTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FEE_DESTINATION", solana.NewWallet().PublicKey().String())
	t.Setenv("FEE_USD", "7.5")
	t.Setenv("WALLET_MAX_SPEND_SOL", "0.5")
	t.Setenv("CONFIRM_TIMEOUT", "30s")
	t.Setenv("SOLANA_RPC_URL", "http://localhost:8899")

	cfg, err := config.Load("testdata/missing.env")

	require.NoError(t, err)
	assert.Equal(t, 7.5, cfg.FeeUSD)
	assert.Equal(t, uint64(500_000_000), cfg.WalletMaxLamport)
	assert.Equal(t, 30*time.Second, cfg.ConfirmTimeout)
	assert.Equal(t, "http://localhost:8899", cfg.SolanaRPCURL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("FEE_DESTINATION", "")
	_, err := config.Load("testdata/missing.env")
	assert.Error(t, err)

	t.Setenv("FEE_DESTINATION", "not-base58!")
	_, err = config.Load("testdata/missing.env")
	assert.Error(t, err)

	t.Setenv("FEE_DESTINATION", solana.NewWallet().PublicKey().String())
	t.Setenv("FEE_USD", "-1")
	_, err = config.Load("testdata/missing.env")
	assert.Error(t, err)
}
