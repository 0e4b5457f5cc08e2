package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
)

const (
	DefaultPriceAPIURL    = "https://api.coingecko.com/api/v3/simple/price"
	DefaultMetadataAPIURL = "https://api.mainnet-beta.solscan.io/token/meta"
	DefaultAssetID        = "solana"
	DefaultFeeUSD         = 5.0
	DefaultHTTPAddr       = ":8080"
	DefaultConfirmTimeout = 60 * time.Second
	DefaultPollInterval   = 2 * time.Second
)

// Config reúne as constantes de rede e da cobrança.
type Config struct {
	SolanaRPCURL     string
	PriceAPIURL      string
	MetadataAPIURL   string
	AssetID          string
	FeeDestination   solana.PublicKey
	FeeUSD           float64
	WalletKeypair    string
	WalletMaxLamport uint64
	HTTPAddr         string
	ConfirmTimeout   time.Duration
	PollInterval     time.Duration
}

// Load lê o .env (se existir) e as variáveis de ambiente.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("Arquivo .env não carregado (%v); usando apenas o ambiente.", err)
	}

	cfg := Config{
		SolanaRPCURL:   getEnv("SOLANA_RPC_URL", rpc.MainNetBeta_RPC),
		PriceAPIURL:    getEnv("PRICE_API_URL", DefaultPriceAPIURL),
		MetadataAPIURL: getEnv("TOKEN_METADATA_API_URL", DefaultMetadataAPIURL),
		AssetID:        getEnv("PRICE_ASSET_ID", DefaultAssetID),
		WalletKeypair:  os.Getenv("WALLET_KEYPAIR"),
		HTTPAddr:       getEnv("HTTP_ADDR", DefaultHTTPAddr),
		FeeUSD:         DefaultFeeUSD,
		ConfirmTimeout: DefaultConfirmTimeout,
		PollInterval:   DefaultPollInterval,
	}

	dest := os.Getenv("FEE_DESTINATION")
	if dest == "" {
		return Config{}, fmt.Errorf("FEE_DESTINATION é obrigatório")
	}
	pk, err := solana.PublicKeyFromBase58(dest)
	if err != nil {
		return Config{}, fmt.Errorf("FEE_DESTINATION inválido: %w", err)
	}
	cfg.FeeDestination = pk

	if v := os.Getenv("FEE_USD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("FEE_USD inválido: %q", v)
		}
		cfg.FeeUSD = f
	}
	if v := os.Getenv("WALLET_MAX_SPEND_SOL"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return Config{}, fmt.Errorf("WALLET_MAX_SPEND_SOL inválido: %q", v)
		}
		cfg.WalletMaxLamport = uint64(f * float64(solana.LAMPORTS_PER_SOL))
	}
	if v := os.Getenv("CONFIRM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CONFIRM_TIMEOUT inválido: %w", err)
		}
		cfg.ConfirmTimeout = d
	}
	if v := os.Getenv("CONFIRM_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("CONFIRM_POLL_INTERVAL inválido: %q", v)
		}
		cfg.PollInterval = d
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
