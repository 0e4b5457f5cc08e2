package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oxflash/tool/models"
	"github.com/oxflash/tool/services"
)

// Dashboard é o que o handler precisa do controller.
type Dashboard interface {
	Toggle(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Refresh(ctx context.Context) error
	View() models.DashboardView
	SubmitFee(ctx context.Context) (models.TransferReceipt, error)
}

// DashboardHandler lida com as requisições HTTP do dashboard.
type DashboardHandler struct {
	Dashboard Dashboard
}

// NewDashboardHandler cria uma nova instância do handler.
func NewDashboardHandler(d Dashboard) *DashboardHandler {
	return &DashboardHandler{Dashboard: d}
}

// ToggleWallet conecta ou desconecta a carteira.
// POST /wallet/toggle
func (h *DashboardHandler) ToggleWallet(w http.ResponseWriter, r *http.Request) {
	if err := h.Dashboard.Toggle(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Dashboard.View())
}

// DisconnectWallet encerra a sessão.
// DELETE /wallet
func (h *DashboardHandler) DisconnectWallet(w http.ResponseWriter, r *http.Request) {
	if err := h.Dashboard.Disconnect(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Dashboard.View())
}

// GetDashboard devolve o estado atual.
// GET /dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Dashboard.View())
}

// RefreshDashboard busca de novo cotação, saldo e tokens.
// POST /dashboard/refresh
func (h *DashboardHandler) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	if err := h.Dashboard.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Dashboard.View())
}

// SubmitFee envia a cobrança e devolve o recibo com o status observado.
// POST /transfers
func (h *DashboardHandler) SubmitFee(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.Dashboard.SubmitFee(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, receipt)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrProviderUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, services.ErrNotConnected), errors.Is(err, services.ErrRateUnavailable):
		status = http.StatusConflict
	case errors.Is(err, services.ErrSubmissionRejected):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrSubmissionFailed):
		status = http.StatusBadGateway
	case errors.Is(err, services.ErrInvalidFeeAmount):
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}
