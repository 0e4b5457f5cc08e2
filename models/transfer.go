package models

import "time"

// TransferRequest é montado apenas no momento do envio.
type TransferRequest struct {
	SourceAddress        string  `json:"source_address"`
	DestinationAddress   string  `json:"destination_address"`
	FiatAmount           float64 `json:"fiat_amount"`
	ComputedNativeAmount float64 `json:"computed_native_amount"`
	Lamports             uint64  `json:"lamports"`
}

// TransferStatus é o estado observado de uma transação enviada.
type TransferStatus string

const (
	TransferSubmitted TransferStatus = "submitted"
	TransferConfirmed TransferStatus = "confirmed"
	TransferFailed    TransferStatus = "failed"
	// TransferPending: a confirmação não chegou antes do prazo. Não é falha.
	TransferPending TransferStatus = "pending"
)

// TransferReceipt é o resultado devolvido ao usuário após o envio.
type TransferReceipt struct {
	Request   TransferRequest `json:"request"`
	Signature string          `json:"signature"`
	Status    TransferStatus  `json:"status"`
	Error     string          `json:"error,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}
