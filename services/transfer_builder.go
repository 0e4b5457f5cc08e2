package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/oxflash/tool/models"
)

// BlockhashSource fornece o blockhash recente para novas transações.
type BlockhashSource interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
}

// TransactionSigner assina e envia pela carteira do usuário.
type TransactionSigner interface {
	SignAndSend(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// TransferBuilder monta a transferência de SOL equivalente a um valor em
// dólares e a entrega à carteira. Não há nova tentativa automática: o
// resultado informa que a transação foi enviada, não que foi finalizada.
type TransferBuilder struct {
	chain  BlockhashSource
	signer TransactionSigner
}

func NewTransferBuilder(chain BlockhashSource, signer TransactionSigner) *TransferBuilder {
	return &TransferBuilder{chain: chain, signer: signer}
}

// Prepare calcula o pedido sem tocar na rede.
func (b *TransferBuilder) Prepare(session models.Session, rate *models.ConversionRate, feeFiatAmount float64, destination solana.PublicKey) (models.TransferRequest, error) {
	if !session.Connected() {
		return models.TransferRequest{}, ErrNotConnected
	}
	if !rate.Usable() {
		return models.TransferRequest{}, ErrRateUnavailable
	}
	if feeFiatAmount <= 0 || math.IsNaN(feeFiatAmount) || math.IsInf(feeFiatAmount, 0) {
		return models.TransferRequest{}, fmt.Errorf("%w: %v", ErrInvalidFeeAmount, feeFiatAmount)
	}

	// Multiplica antes de dividir para não perder lamports em frações binárias.
	lamports := math.Floor(feeFiatAmount * float64(solana.LAMPORTS_PER_SOL) / rate.FiatPerUnit)
	if lamports < 1 || lamports > math.MaxUint64 {
		return models.TransferRequest{}, fmt.Errorf("%w: %.0f lamports", ErrInvalidFeeAmount, lamports)
	}

	return models.TransferRequest{
		SourceAddress:        session.Address,
		DestinationAddress:   destination.String(),
		FiatAmount:           feeFiatAmount,
		ComputedNativeAmount: feeFiatAmount / rate.FiatPerUnit,
		Lamports:             uint64(lamports),
	}, nil
}

// BuildAndSubmit monta uma única instrução de transferência do System
// Program e delega assinatura e envio à carteira.
func (b *TransferBuilder) BuildAndSubmit(ctx context.Context, session models.Session, rate *models.ConversionRate, feeFiatAmount float64, destination solana.PublicKey) (models.TransferRequest, solana.Signature, error) {
	req, err := b.Prepare(session, rate, feeFiatAmount, destination)
	if err != nil {
		return models.TransferRequest{}, solana.Signature{}, err
	}
	from, err := solana.PublicKeyFromBase58(session.Address)
	if err != nil {
		return req, solana.Signature{}, fmt.Errorf("%w: endereço de origem inválido: %w", ErrSubmissionFailed, err)
	}

	blockhash, err := b.chain.LatestBlockhash(ctx)
	if err != nil {
		return req, solana.Signature{}, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(req.Lamports, from, destination).Build(),
		},
		blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return req, solana.Signature{}, fmt.Errorf("%w: falha ao criar transação: %w", ErrSubmissionFailed, err)
	}

	sig, err := b.signer.SignAndSend(ctx, tx)
	if err != nil {
		return req, solana.Signature{}, normalizeSubmitError(err)
	}
	log.Printf("Transferência de %d lamports para %s enviada: %s", req.Lamports, req.DestinationAddress, sig)
	return req, sig, nil
}
