package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	"github.com/oxflash/tool/models"
)

// WalletProvider é a carteira externa: conecta, desconecta e assina.
// Erros de recusa devem envolver ErrProviderDeclined.
type WalletProvider interface {
	IsAvailable() bool
	Connect(ctx context.Context) (solana.PublicKey, error)
	Disconnect(ctx context.Context) error
	SignAndSend(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// WalletSession mantém o único endereço autenticado da sessão.
type WalletSession struct {
	provider WalletProvider

	mu      sync.Mutex
	session models.Session
}

// NewWalletSession cria uma sessão desconectada. provider pode ser nil.
func NewWalletSession(provider WalletProvider) *WalletSession {
	return &WalletSession{provider: provider}
}

// Connect pede autorização à carteira. Se já houver sessão, desconecta
// (o mesmo botão serve às duas ações) e devolve uma sessão vazia.
func (w *WalletSession) Connect(ctx context.Context) (models.Session, error) {
	w.mu.Lock()
	connected := w.session.Connected()
	w.mu.Unlock()
	if connected {
		return models.Session{}, w.Disconnect(ctx)
	}

	if w.provider == nil || !w.provider.IsAvailable() {
		return models.Session{}, ErrProviderUnavailable
	}

	pk, err := w.provider.Connect(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	s := models.Session{
		ID:          uuid.New().String(),
		Address:     pk.String(),
		ConnectedAt: time.Now(),
	}
	w.mu.Lock()
	w.session = s
	w.mu.Unlock()
	log.Printf("Carteira %s conectada (sessão %s).", s.Address, s.ID)
	return s, nil
}

// Disconnect encerra a sessão. O endereço é apagado mesmo se a carteira
// falhar ao desconectar.
func (w *WalletSession) Disconnect(ctx context.Context) error {
	w.mu.Lock()
	prev := w.session
	w.session = models.Session{}
	w.mu.Unlock()
	if !prev.Connected() {
		return nil
	}
	log.Printf("Carteira %s desconectada (sessão %s).", prev.Address, prev.ID)
	if w.provider == nil {
		return nil
	}
	if err := w.provider.Disconnect(ctx); err != nil {
		return fmt.Errorf("falha ao desconectar carteira: %w", err)
	}
	return nil
}

// Forget apaga a sessão sem falar com a carteira. Usado quando é a
// própria carteira que encerra a conexão.
func (w *WalletSession) Forget() {
	w.mu.Lock()
	w.session = models.Session{}
	w.mu.Unlock()
}

// GetAddress devolve o endereço atual ou ErrNotConnected.
func (w *WalletSession) GetAddress() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.session.Connected() {
		return "", ErrNotConnected
	}
	return w.session.Address, nil
}

// Current devolve uma cópia da sessão.
func (w *WalletSession) Current() models.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

// SignAndSend delega assinatura e envio à carteira, normalizando os erros.
func (w *WalletSession) SignAndSend(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if _, err := w.GetAddress(); err != nil {
		return solana.Signature{}, err
	}
	sig, err := w.provider.SignAndSend(ctx, tx)
	if err != nil {
		return solana.Signature{}, normalizeSubmitError(err)
	}
	return sig, nil
}
