package models

// RawTokenAccount é uma conta do programa SPL Token como devolvida pelo RPC.
type RawTokenAccount struct {
	Mint      string  `json:"mint"`
	RawAmount string  `json:"raw_amount"` // Unidades atômicas, em string para não perder precisão
	UIAmount  float64 `json:"ui_amount"`
}

// TokenMetadata é o subconjunto da resposta da API de metadados que usamos.
type TokenMetadata struct {
	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// TokenHolding é um saldo de token pronto para exibição.
type TokenHolding struct {
	MintIdentifier string  `json:"mint"`
	UIAmount       float64 `json:"ui_amount"`
	DisplayName    string  `json:"display_name,omitempty"`
}
