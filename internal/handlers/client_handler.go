package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/audit"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httperr"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httpresp"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/resources"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

type ClientHandler struct {
	registry *resources.Registry
	audit    *audit.Dispatcher
}

func NewClientHandler(registry *resources.Registry, auditD *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{registry: registry, audit: auditD}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type UpdateClientRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	barbershopID := tenantFrom(c)

	set, err := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}
	st := set.Clients

	if err = resources.Ensure(c.Request.Context(), st, wantsRefresh(c)); err != nil {
		if st.State() != store.Ready && st.Len() == 0 {
			// Fetch inicial falhou: estado de erro explícito,
			// distinto de "zero linhas".
			httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
			return
		}
		httpresp.StaleList(c, filterClients(st.Rows(), c))
		return
	}

	httpresp.List(c, filterClients(st.Rows(), c))
}

func filterClients(rows []*models.Client, c *gin.Context) []*models.Client {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	status := strings.TrimSpace(c.Query("status"))

	out := make([]*models.Client, 0, len(rows))
	for _, cl := range rows {
		if status != "" && cl.Status != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(cl.Name), query) &&
			!strings.Contains(cl.Phone, query) &&
			!strings.Contains(strings.ToLower(cl.Email), query) {
			continue
		}
		out = append(out, cl)
	}
	return out
}

func (h *ClientHandler) Create(c *gin.Context) {
	barbershopID := tenantFrom(c)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	client, err := set.Clients.Create(c.Request.Context(), &models.Client{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Notes:  req.Notes,
		Status: models.ClientStatusActive,
	})
	if err != nil {
		writeStoreError(c, err, "client")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "client_created",
		Entity:       audit.EntityClient,
		EntityID:     &client.ID,
	})

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	barbershopID := tenantFrom(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	fields := store.Fields{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Status != nil {
		if *req.Status != models.ClientStatusActive && *req.Status != models.ClientStatusInactive {
			httperr.BadRequest(c, "invalid_status", "Status deve ser active ou inactive.")
			return
		}
		fields["status"] = *req.Status
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	client, err := set.Clients.Update(c.Request.Context(), id, fields)
	if err != nil {
		writeStoreError(c, err, "client")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "client_updated",
		Entity:       audit.EntityClient,
		EntityID:     &client.ID,
	})

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
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

	if err := set.Clients.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "client")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "client_deleted",
		Entity:       audit.EntityClient,
		EntityID:     &id,
	})

	c.Status(http.StatusNoContent)
}
