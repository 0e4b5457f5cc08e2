package models

import (
	"fmt"
	"math"
)

// Phase é o estado da máquina do dashboard.
type Phase string

const (
	PhaseDisconnected Phase = "disconnected"
	PhaseConnecting   Phase = "connecting"
	PhaseLoading      Phase = "loading"
	PhaseReady        Phase = "ready"
)

// DashboardState é o único estado mutável visível na UI.
// Generation só cresce; cada desconexão a incrementa.
type DashboardState struct {
	Generation   uint64
	Phase        Phase
	Session      Session
	Rate         *ConversionRate
	Balance      *Balance
	Holdings     []TokenHolding
	PriceErr     string
	BalanceErr   string
	HoldingsErr  string
	LastTransfer *TransferReceipt
	TransferErr  string
}

// DashboardView é o que a camada HTTP devolve.
type DashboardView struct {
	Phase        Phase             `json:"phase"`
	Address      string            `json:"address,omitempty"`
	Balance      string            `json:"balance,omitempty"`
	FiatBalance  string            `json:"fiat_balance,omitempty"`
	Rate         float64           `json:"rate,omitempty"`
	Holdings     []TokenHolding    `json:"holdings"`
	Errors       map[string]string `json:"errors,omitempty"`
	LastTransfer *TransferReceipt  `json:"last_transfer,omitempty"`
}

// ComputeFiatValue multiplica o saldo pela cotação, arredondado a 2 casas.
// Sem cotação o valor é 0.
func ComputeFiatValue(balance Balance, rate *ConversionRate) float64 {
	if rate == nil || rate.FiatPerUnit <= 0 {
		return 0
	}
	return math.Round(balance.NativeAmount*rate.FiatPerUnit*100) / 100
}

// FormatNative formata o saldo nativo com 4 casas.
func FormatNative(b Balance) string {
	return fmt.Sprintf("%.4f", b.NativeAmount)
}

// FormatFiat formata um valor em dólares.
func FormatFiat(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// View deriva a visão exibível do estado.
func (s DashboardState) View() DashboardView {
	v := DashboardView{
		Phase:        s.Phase,
		Address:      s.Session.Address,
		Holdings:     append([]TokenHolding{}, s.Holdings...),
		LastTransfer: s.LastTransfer,
	}
	if s.Rate != nil {
		v.Rate = s.Rate.FiatPerUnit
	}
	if s.Balance != nil {
		v.Balance = FormatNative(*s.Balance)
		v.FiatBalance = FormatFiat(ComputeFiatValue(*s.Balance, s.Rate))
	}
	errs := map[string]string{}
	for field, msg := range map[string]string{
		"price":    s.PriceErr,
		"balance":  s.BalanceErr,
		"holdings": s.HoldingsErr,
		"transfer": s.TransferErr,
	} {
		if msg != "" {
			errs[field] = msg
		}
	}
	if len(errs) > 0 {
		v.Errors = errs
	}
	return v
}
