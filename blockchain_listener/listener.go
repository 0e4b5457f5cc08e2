package blockchain_listener

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/oxflash/tool/models"
)

// StatusSource consulta o estado de uma assinatura. Devolve nil enquanto o
// nó ainda não conhece a transação.
type StatusSource interface {
	SignatureStatus(ctx context.Context, sig solana.Signature) (*rpc.SignatureStatusesResult, error)
}

// ConfirmationWatcher acompanha uma transação enviada até ela ser confirmada,
// falhar ou o prazo acabar.
type ConfirmationWatcher struct {
	Source       StatusSource
	Timeout      time.Duration
	PollInterval time.Duration
}

// NewConfirmationWatcher cria o watcher.
func NewConfirmationWatcher(source StatusSource, timeout, pollInterval time.Duration) *ConfirmationWatcher {
	return &ConfirmationWatcher{Source: source, Timeout: timeout, PollInterval: pollInterval}
}

// Await consulta o status até um resultado definitivo. Se o prazo acabar sem
// resposta o status é TransferPending: a transação pode ainda ser confirmada,
// então nunca é reportada como falha por tempo.
func (w *ConfirmationWatcher) Await(ctx context.Context, sig solana.Signature) (models.TransferStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		status, err := w.Source.SignatureStatus(ctx, sig)
		if err != nil {
			log.Printf("Erro ao verificar status da transação %s: %v", sig, err)
		} else if status != nil {
			if status.Err != nil {
				log.Printf("Transação %s falhou: %v", sig, status.Err)
				return models.TransferFailed, fmt.Errorf("transação %s falhou na rede: %v", sig, status.Err)
			}
			switch status.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				log.Printf("Transação %s confirmada (%s).", sig, status.ConfirmationStatus)
				return models.TransferConfirmed, nil
			}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				log.Printf("Transação %s sem confirmação após %s.", sig, w.Timeout)
				return models.TransferPending, nil
			}
			return models.TransferPending, ctx.Err()
		case <-ticker.C:
		}
	}
}
