package services

import (
	"errors"
	"fmt"
)

// Erros de domínio. Chamadores usam errors.Is; as causas vêm encadeadas.
var (
	ErrProviderUnavailable = errors.New("carteira indisponível")
	ErrNotConnected        = errors.New("carteira não conectada")
	ErrOracleUnavailable   = errors.New("cotação indisponível")
	ErrChainQueryFailed    = errors.New("falha na consulta à blockchain")
	ErrMetadataUnavailable = errors.New("metadados do token indisponíveis")
	ErrRateUnavailable     = errors.New("cotação ausente ou zero")
	ErrSubmissionRejected  = errors.New("assinatura recusada pela carteira")
	ErrSubmissionFailed    = errors.New("falha ao enviar transação")
	ErrInvalidFeeAmount    = errors.New("valor da cobrança inválido")

	// ErrProviderDeclined é devolvido por implementações de WalletProvider
	// quando o usuário (ou a política da carteira) recusa assinar.
	ErrProviderDeclined = errors.New("carteira recusou a operação")
)

// normalizeSubmitError traduz erros da carteira para a taxonomia de envio.
func normalizeSubmitError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrSubmissionRejected), errors.Is(err, ErrSubmissionFailed), errors.Is(err, ErrNotConnected):
		return err
	case errors.Is(err, ErrProviderDeclined):
		return fmt.Errorf("%w: %w", ErrSubmissionRejected, err)
	default:
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
}
