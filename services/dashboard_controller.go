package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/oxflash/tool/models"
)

// RateFetcher é o oráculo de preço visto pelo controller.
type RateFetcher interface {
	FetchRate(ctx context.Context) (models.ConversionRate, error)
}

// HoldingsFetcher é o agregador de saldos visto pelo controller.
type HoldingsFetcher interface {
	FetchNativeBalance(ctx context.Context, address string) (models.Balance, error)
	FetchTokenHoldings(ctx context.Context, address string) ([]models.TokenHolding, error)
}

// Submitter monta e envia a transferência.
type Submitter interface {
	BuildAndSubmit(ctx context.Context, session models.Session, rate *models.ConversionRate, feeFiatAmount float64, destination solana.PublicKey) (models.TransferRequest, solana.Signature, error)
}

// ConfirmationAwaiter acompanha a transação até um resultado.
type ConfirmationAwaiter interface {
	Await(ctx context.Context, sig solana.Signature) (models.TransferStatus, error)
}

// FeePolicy é o valor fixo em dólares e o destino da cobrança.
type FeePolicy struct {
	FiatAmount  float64
	Destination solana.PublicKey
}

// DashboardController orquestra sessão, cotação, saldos e transferência, e é
// o único dono do DashboardState.
//
// Toda escrita vinda de uma busca passa por apply, que descarta o resultado
// se a geração mudou (houve desconexão) desde que a busca começou.
type DashboardController struct {
	wallet    *WalletSession
	oracle    RateFetcher
	balances  HoldingsFetcher
	transfers Submitter
	watcher   ConfirmationAwaiter
	fee       FeePolicy

	mu    sync.Mutex
	state models.DashboardState
}

func NewDashboardController(wallet *WalletSession, oracle RateFetcher, balances HoldingsFetcher, transfers Submitter, watcher ConfirmationAwaiter, fee FeePolicy) *DashboardController {
	return &DashboardController{
		wallet:    wallet,
		oracle:    oracle,
		balances:  balances,
		transfers: transfers,
		watcher:   watcher,
		fee:       fee,
		state:     models.DashboardState{Phase: models.PhaseDisconnected},
	}
}

// State devolve uma cópia do estado atual.
func (c *DashboardController) State() models.DashboardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Holdings = append([]models.TokenHolding(nil), c.state.Holdings...)
	return s
}

// View devolve a visão exibível.
func (c *DashboardController) View() models.DashboardView {
	return c.State().View()
}

// Toggle conecta se desconectado e desconecta caso contrário. Ao conectar,
// carrega cotação, saldo e tokens antes de retornar.
func (c *DashboardController) Toggle(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase != models.PhaseDisconnected {
		c.mu.Unlock()
		return c.Disconnect(ctx)
	}
	c.state.Phase = models.PhaseConnecting
	gen := c.state.Generation
	c.mu.Unlock()

	session, err := c.wallet.Connect(ctx)
	if err != nil || !session.Connected() {
		c.mu.Lock()
		if c.state.Generation == gen {
			c.state.Phase = models.PhaseDisconnected
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if c.state.Generation != gen {
		// Desconectado enquanto a carteira respondia.
		c.mu.Unlock()
		return c.wallet.Disconnect(ctx)
	}
	c.state = models.DashboardState{
		Generation: gen,
		Phase:      models.PhaseLoading,
		Session:    session,
		Rate:       c.state.Rate,
	}
	c.mu.Unlock()

	c.load(ctx, gen, session.Address)
	return nil
}

// Refresh repete as buscas para a sessão atual.
func (c *DashboardController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.Session.Connected() {
		c.mu.Unlock()
		return ErrNotConnected
	}
	gen := c.state.Generation
	address := c.state.Session.Address
	c.state.Phase = models.PhaseLoading
	c.mu.Unlock()

	c.load(ctx, gen, address)
	return nil
}

// Disconnect encerra a sessão e invalida qualquer busca em andamento.
func (c *DashboardController) Disconnect(ctx context.Context) error {
	c.reset()
	if err := c.wallet.Disconnect(ctx); err != nil {
		log.Printf("Erro ao desconectar carteira: %v", err)
	}
	return nil
}

// HandleProviderDisconnect trata a desconexão iniciada pela própria carteira.
func (c *DashboardController) HandleProviderDisconnect() {
	c.wallet.Forget()
	c.reset()
}

func (c *DashboardController) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = models.DashboardState{
		Generation: c.state.Generation + 1,
		Phase:      models.PhaseDisconnected,
		Rate:       c.state.Rate,
	}
}

// apply executa fn sob o lock apenas se gen ainda for a geração atual.
func (c *DashboardController) apply(gen uint64, fn func(s *models.DashboardState)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Generation != gen {
		return false
	}
	fn(&c.state)
	return true
}

// load dispara as três buscas sem que uma espere a outra. Cada falha vira um
// erro do campo correspondente; a cotação anterior é mantida se a nova falhar.
func (c *DashboardController) load(ctx context.Context, gen uint64, address string) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		rate, err := c.oracle.FetchRate(ctx)
		c.apply(gen, func(s *models.DashboardState) {
			if err != nil {
				s.PriceErr = err.Error()
				return
			}
			s.Rate = &rate
			s.PriceErr = ""
		})
	}()

	go func() {
		defer wg.Done()
		balance, err := c.balances.FetchNativeBalance(ctx, address)
		c.apply(gen, func(s *models.DashboardState) {
			if err != nil {
				s.BalanceErr = err.Error()
				return
			}
			s.Balance = &balance
			s.BalanceErr = ""
		})
	}()

	go func() {
		defer wg.Done()
		holdings, err := c.balances.FetchTokenHoldings(ctx, address)
		c.apply(gen, func(s *models.DashboardState) {
			if err != nil {
				s.HoldingsErr = err.Error()
				return
			}
			s.Holdings = holdings
			s.HoldingsErr = ""
		})
	}()

	wg.Wait()
	if !c.apply(gen, func(s *models.DashboardState) { s.Phase = models.PhaseReady }) {
		log.Printf("Resultados da geração %d descartados: sessão encerrada.", gen)
	}
}

// SubmitFee envia a cobrança e acompanha a confirmação. Falhas não são
// repetidas automaticamente; o usuário precisa iniciar de novo.
func (c *DashboardController) SubmitFee(ctx context.Context) (models.TransferReceipt, error) {
	c.mu.Lock()
	session := c.state.Session
	rate := c.state.Rate
	gen := c.state.Generation
	c.mu.Unlock()

	if !session.Connected() {
		return models.TransferReceipt{}, ErrNotConnected
	}

	req, sig, err := c.transfers.BuildAndSubmit(ctx, session, rate, c.fee.FiatAmount, c.fee.Destination)
	if err != nil {
		c.apply(gen, func(s *models.DashboardState) { s.TransferErr = err.Error() })
		return models.TransferReceipt{}, err
	}

	receipt := models.TransferReceipt{
		Request:   req,
		Signature: sig.String(),
		Status:    models.TransferSubmitted,
		UpdatedAt: time.Now(),
	}
	c.apply(gen, func(s *models.DashboardState) {
		r := receipt
		s.LastTransfer = &r
		s.TransferErr = ""
	})

	if c.watcher != nil {
		status, werr := c.watcher.Await(ctx, sig)
		receipt.Status = status
		receipt.UpdatedAt = time.Now()
		if werr != nil && !errors.Is(werr, context.Canceled) {
			receipt.Error = werr.Error()
		}
		c.apply(gen, func(s *models.DashboardState) {
			r := receipt
			s.LastTransfer = &r
		})
	}
	return receipt, nil
}
