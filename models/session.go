package models

import "time"

// Session representa a carteira autenticada na sessão atual.
type Session struct {
	ID          string    `json:"id"`
	Address     string    `json:"address"`
	ConnectedAt time.Time `json:"connected_at"`
}

// Connected indica se a sessão tem um endereço.
func (s Session) Connected() bool {
	return s.Address != ""
}

// ConversionRate é a cotação fiat do ativo nativo (USD por SOL).
type ConversionRate struct {
	FiatPerUnit float64   `json:"fiat_per_unit"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Usable indica se a cotação pode ser usada em divisões.
func (r *ConversionRate) Usable() bool {
	return r != nil && r.FiatPerUnit > 0
}

// Balance é o saldo nativo em unidades de exibição (SOL).
type Balance struct {
	NativeAmount float64 `json:"native_amount"`
}
