package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/oxflash/tool/models"
)

// ChainReader é o serviço de leitura da blockchain usado pelo agregador.
type ChainReader interface {
	GetBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]models.RawTokenAccount, error)
}

// SolanaIntegrationService envolve o único endpoint RPC usado para leituras e envios.
type SolanaIntegrationService struct {
	RPCClient  *rpc.Client
	Commitment rpc.CommitmentType
}

// NewSolanaIntegrationService cria o serviço para o endpoint informado.
func NewSolanaIntegrationService(rpcEndpoint string) *SolanaIntegrationService {
	return &SolanaIntegrationService{
		RPCClient:  rpc.New(rpcEndpoint),
		Commitment: rpc.CommitmentConfirmed,
	}
}

// GetBalance devolve o saldo em lamports.
func (s *SolanaIntegrationService) GetBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	resp, err := s.RPCClient.GetBalance(ctx, owner, s.Commitment)
	if err != nil {
		return 0, fmt.Errorf("falha ao obter saldo de %s: %w", owner, err)
	}
	return resp.Value, nil
}

// GetTokenAccountsByOwner lista as contas do programa SPL Token do dono,
// na ordem em que o RPC as devolve.
func (s *SolanaIntegrationService) GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]models.RawTokenAccount, error) {
	programID := solana.TokenProgramID
	resp, err := s.RPCClient.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{ProgramId: &programID},
		&rpc.GetTokenAccountsOpts{
			Commitment: s.Commitment,
			Encoding:   solana.EncodingJSONParsed,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar contas de token de %s: %w", owner, err)
	}

	accounts := make([]models.RawTokenAccount, 0, len(resp.Value))
	for _, acc := range resp.Value {
		if acc == nil || acc.Account.Data == nil {
			continue
		}
		parsed, err := decodeParsedTokenAccount(acc.Account.Data.GetRawJSON())
		if err != nil {
			log.Printf("Conta de token %s ignorada: %v", acc.Pubkey, err)
			continue
		}
		accounts = append(accounts, parsed)
	}
	return accounts, nil
}

// LatestBlockhash obtém o blockhash para montar uma transação.
func (s *SolanaIntegrationService) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	resp, err := s.RPCClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("falha ao obter blockhash: %w", err)
	}
	return resp.Value.Blockhash, nil
}

// SendTransaction envia uma transação já assinada.
func (s *SolanaIntegrationService) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := s.RPCClient.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("falha ao enviar transação: %w", err)
	}
	log.Printf("Transação enviada: %s", sig)
	return sig, nil
}

// SignatureStatus consulta o estado atual de uma assinatura. Devolve nil se
// o nó ainda não a conhece.
func (s *SolanaIntegrationService) SignatureStatus(ctx context.Context, sig solana.Signature) (*rpc.SignatureStatusesResult, error) {
	resp, err := s.RPCClient.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return nil, fmt.Errorf("falha ao consultar status de %s: %w", sig, err)
	}
	if resp == nil || len(resp.Value) == 0 {
		return nil, nil
	}
	return resp.Value[0], nil
}

// parsedTokenAccount espelha a codificação jsonParsed de uma conta SPL Token.
type parsedTokenAccount struct {
	Program string `json:"program"`
	Parsed  struct {
		Type string `json:"type"`
		Info struct {
			Mint        string `json:"mint"`
			TokenAmount struct {
				Amount   string   `json:"amount"`
				Decimals uint8    `json:"decimals"`
				UIAmount *float64 `json:"uiAmount"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

func decodeParsedTokenAccount(raw []byte) (models.RawTokenAccount, error) {
	if len(raw) == 0 {
		return models.RawTokenAccount{}, fmt.Errorf("conta sem dados jsonParsed")
	}
	var p parsedTokenAccount
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.RawTokenAccount{}, fmt.Errorf("falha ao decodificar conta de token: %w", err)
	}
	if p.Parsed.Info.Mint == "" {
		return models.RawTokenAccount{}, fmt.Errorf("conta de token sem mint")
	}
	out := models.RawTokenAccount{
		Mint:      p.Parsed.Info.Mint,
		RawAmount: p.Parsed.Info.TokenAmount.Amount,
	}
	if p.Parsed.Info.TokenAmount.UIAmount != nil {
		out.UIAmount = *p.Parsed.Info.TokenAmount.UIAmount
	}
	return out, nil
}
