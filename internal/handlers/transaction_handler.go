package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/audit"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httperr"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httpresp"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/payments"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/resources"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

type TransactionHandler struct {
	db       *gorm.DB
	registry *resources.Registry
	audit    *audit.Dispatcher
	payments *payments.Client
}

func NewTransactionHandler(
	db *gorm.DB,
	registry *resources.Registry,
	auditD *audit.Dispatcher,
	pay *payments.Client,
) *TransactionHandler {
	return &TransactionHandler{
		db:       db,
		registry: registry,
		audit:    auditD,
		payments: pay,
	}
}

// --------- Requests ---------

type CreateTransactionRequest struct {
	AppointmentID *uint   `json:"appointment_id"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Type          string  `json:"type" binding:"required,oneof=revenue expense"`
	Category      string  `json:"category"`
	Date          string  `json:"date" binding:"required"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
}

type UpdateTransactionRequest struct {
	Amount        *float64 `json:"amount,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Date          *string  `json:"date,omitempty"`
	Status        *string  `json:"status,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
}

func validTransactionStatus(s string) bool {
	return s == models.TransactionPending ||
		s == models.TransactionPaid ||
		s == models.TransactionCancelled
}

// --------- Handlers ---------

func (h *TransactionHandler) List(c *gin.Context) {
	barbershopID := tenantFrom(c)

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}
	st := set.Transactions

	if err := resources.Ensure(c.Request.Context(), st, wantsRefresh(c)); err != nil {
		if st.State() != store.Ready && st.Len() == 0 {
			httperr.Internal(c, "failed_to_list_transactions", "Erro ao listar transações.")
			return
		}
		httpresp.StaleList(c, filterTransactions(st.Rows(), c))
		return
	}

	httpresp.List(c, filterTransactions(st.Rows(), c))
}

func filterTransactions(rows []*models.Transaction, c *gin.Context) []*models.Transaction {
	txType := strings.TrimSpace(c.Query("type"))
	status := strings.TrimSpace(c.Query("status"))
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))

	out := make([]*models.Transaction, 0, len(rows))
	for _, t := range rows {
		if txType != "" && t.Type != txType {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		if from != "" && t.Date < from {
			continue
		}
		if to != "" && t.Date > to {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (h *TransactionHandler) Create(c *gin.Context) {
	barbershopID := tenantFrom(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	status := req.Status
	if status == "" {
		status = models.TransactionPaid
	}
	if !validTransactionStatus(status) {
		httperr.BadRequest(c, "invalid_status", "Status de transação inválido.")
		return
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	// Vínculo opcional com agendamento: precisa existir no tenant.
	if req.AppointmentID != nil {
		var count int64
		h.db.Model(&models.Appointment{}).
			Where("id = ? AND barbershop_id = ?", *req.AppointmentID, barbershopID).
			Count(&count)
		if count == 0 {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
	}

	tx, err := set.Transactions.Create(c.Request.Context(), &models.Transaction{
		AppointmentID: req.AppointmentID,
		Amount:        req.Amount,
		Type:          req.Type,
		Category:      strings.ToLower(req.Category),
		Date:          req.Date,
		Status:        status,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeStoreError(c, err, "transaction")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "transaction_created",
		Entity:       audit.EntityTransaction,
		EntityID:     &tx.ID,
	})

	c.JSON(http.StatusCreated, tx)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	barbershopID := tenantFrom(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	fields := store.Fields{}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			httperr.BadRequest(c, "invalid_amount", "Valor deve ser positivo.")
			return
		}
		fields["amount"] = *req.Amount
	}
	if req.Category != nil {
		fields["category"] = strings.ToLower(*req.Category)
	}
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.Status != nil {
		if !validTransactionStatus(*req.Status) {
			httperr.BadRequest(c, "invalid_status", "Status de transação inválido.")
			return
		}
		fields["status"] = *req.Status
	}
	if req.PaymentMethod != nil {
		fields["payment_method"] = *req.PaymentMethod
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	tx, err := set.Transactions.Update(c.Request.Context(), id, fields)
	if err != nil {
		writeStoreError(c, err, "transaction")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "transaction_updated",
		Entity:       audit.EntityTransaction,
		EntityID:     &tx.ID,
	})

	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	barbershopID := tenantFrom(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	if err := set.Transactions.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "transaction")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "transaction_deleted",
		Entity:       audit.EntityTransaction,
		EntityID:     &id,
	})

	c.Status(http.StatusNoContent)
}

// PaymentLink cria o checkout do Mercado Pago para uma transação de
// receita ainda pendente.
func (h *TransactionHandler) PaymentLink(c *gin.Context) {
	barbershopID := tenantFrom(c)

	if h.payments == nil {
		httperr.Unavailable(c, "payments_disabled", "Pagamentos não estão configurados.")
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	if err := resources.Ensure(c.Request.Context(), set.Transactions, false); err != nil {
		httperr.Unavailable(c, "store_not_ready", "Dados ainda carregando. Tente novamente.")
		return
	}

	tx, found := set.Transactions.GetLocal(id)
	if !found {
		httperr.NotFound(c, "transaction_not_found", "Transação não encontrada.")
		return
	}
	if tx.Type != models.TransactionRevenue || tx.Status != models.TransactionPending {
		httperr.Conflict(c, "not_chargeable", "Só transações de receita pendentes geram cobrança.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	link, err := h.payments.CheckoutLink(c.Request.Context(), &shop, tx)
	if err != nil {
		httperr.Internal(c, "failed_to_create_checkout", "Erro ao criar cobrança.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"init_point": link})
}

// MercadoPagoWebhook fecha o ciclo de cobrança. Não há sessão de
// tenant aqui: o update é direto no banco e o store do tenant é
// refeito se já estiver em memória.
func (h *TransactionHandler) MercadoPagoWebhook(c *gin.Context) {
	if h.payments == nil || c.Query("type") != "payment" {
		c.Status(http.StatusOK)
		return
	}

	paymentID, err := strconv.Atoi(c.Query("data.id"))
	if err != nil {
		c.Status(http.StatusOK)
		return
	}

	txID, approved, externalID, err := h.payments.PaymentStatus(c.Request.Context(), paymentID)
	if err != nil {
		// 500 faz o Mercado Pago reentregar a notificação
		c.Status(http.StatusInternalServerError)
		return
	}
	if !approved {
		c.Status(http.StatusOK)
		return
	}

	var tx models.Transaction
	if err := h.db.First(&tx, txID).Error; err != nil {
		c.Status(http.StatusOK)
		return
	}

	if err := h.db.Model(&tx).Updates(map[string]any{
		"status":              models.TransactionPaid,
		"external_payment_id": externalID,
	}).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: tx.BarbershopID,
		Action:       "transaction_paid",
		Entity:       audit.EntityTransaction,
		EntityID:     &tx.ID,
	})

	// Edição fora de banda: reconcilia o cache do tenant, se houver.
	if set, loaded := h.registry.Peek(tx.BarbershopID); loaded {
		_ = set.Transactions.Refetch(c.Request.Context())
	}

	c.Status(http.StatusOK)
}
