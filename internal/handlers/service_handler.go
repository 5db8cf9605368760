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

type ServiceHandler struct {
	registry *resources.Registry
	audit    *audit.Dispatcher
}

func NewServiceHandler(registry *resources.Registry, auditD *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{registry: registry, audit: auditD}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	barbershopID := tenantFrom(c)

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}
	st := set.Services

	if err := resources.Ensure(c.Request.Context(), st, wantsRefresh(c)); err != nil {
		if st.State() != store.Ready && st.Len() == 0 {
			httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
			return
		}
		httpresp.StaleList(c, filterServices(st.Rows(), c))
		return
	}

	httpresp.List(c, filterServices(st.Rows(), c))
}

func filterServices(rows []*models.Service, c *gin.Context) []*models.Service {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))

	out := make([]*models.Service, 0, len(rows))
	for _, s := range rows {
		if category != "" && strings.ToLower(s.Category) != category {
			continue
		}
		if activeStr == "true" && !s.Active {
			continue
		}
		if activeStr == "false" && s.Active {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(s.Name), query) &&
			!strings.Contains(strings.ToLower(s.Description), query) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barbershopID := tenantFrom(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	service, err := set.Services.Create(c.Request.Context(), &models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Category:    strings.ToLower(req.Category),
		Active:      true,
	})
	if err != nil {
		writeStoreError(c, err, "service")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "service_created",
		Entity:       audit.EntityService,
		EntityID:     &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	barbershopID := tenantFrom(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	fields := store.Fields{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.BadRequest(c, "invalid_duration", "Duração deve ser positiva (em minutos).")
			return
		}
		fields["duration_min"] = *req.DurationMin
	}
	if req.Category != nil {
		fields["category"] = strings.ToLower(*req.Category)
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	service, err := set.Services.Update(c.Request.Context(), id, fields)
	if err != nil {
		writeStoreError(c, err, "service")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "service_updated",
		Entity:       audit.EntityService,
		EntityID:     &service.ID,
	})

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
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

	if err := set.Services.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "service")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "service_deleted",
		Entity:       audit.EntityService,
		EntityID:     &id,
	})

	c.Status(http.StatusNoContent)
}
