package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/oxflash/tool/blockchain_listener"
	"github.com/oxflash/tool/config"
	"github.com/oxflash/tool/handlers"
	"github.com/oxflash/tool/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}

	solanaService := services.NewSolanaIntegrationService(cfg.SolanaRPCURL)

	var provider services.WalletProvider
	if cfg.WalletKeypair != "" {
		provider = services.NewKeypairWalletProvider(cfg.WalletKeypair, solanaService, cfg.WalletMaxLamport)
	}
	wallet := services.NewWalletSession(provider)

	oracle := services.NewPriceOracle(cfg.PriceAPIURL, cfg.AssetID, nil)
	metadata := services.NewSolscanMetadataClient(cfg.MetadataAPIURL, nil)
	aggregator := services.NewBalanceAggregator(solanaService, metadata)
	transfers := services.NewTransferBuilder(solanaService, wallet)
	watcher := blockchain_listener.NewConfirmationWatcher(solanaService, cfg.ConfirmTimeout, cfg.PollInterval)

	controller := services.NewDashboardController(wallet, oracle, aggregator, transfers, watcher, services.FeePolicy{
		FiatAmount:  cfg.FeeUSD,
		Destination: cfg.FeeDestination,
	})

	r := handlers.NewRouter(handlers.NewDashboardHandler(controller))

	fmt.Printf("Dashboard rodando em %s (RPC %s)...\n", cfg.HTTPAddr, cfg.SolanaRPCURL)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
