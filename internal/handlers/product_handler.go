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

type ProductHandler struct {
	registry *resources.Registry
	audit    *audit.Dispatcher
}

func NewProductHandler(registry *resources.Registry, auditD *audit.Dispatcher) *ProductHandler {
	return &ProductHandler{registry: registry, audit: auditD}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"min_stock"`
	Category    string  `json:"category"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	MinStock    *int     `json:"min_stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	barbershopID := tenantFrom(c)

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}
	st := set.Products

	if err := resources.Ensure(c.Request.Context(), st, wantsRefresh(c)); err != nil {
		if st.State() != store.Ready && st.Len() == 0 {
			httperr.Internal(c, "failed_to_list_products", "Erro ao listar produtos.")
			return
		}
		httpresp.StaleList(c, filterProducts(st.Rows(), c))
		return
	}

	httpresp.List(c, filterProducts(st.Rows(), c))
}

func filterProducts(rows []*models.Product, c *gin.Context) []*models.Product {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	lowStock := c.Query("low_stock") == "true"

	out := make([]*models.Product, 0, len(rows))
	for _, p := range rows {
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if lowStock && p.Stock > p.MinStock {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (h *ProductHandler) Create(c *gin.Context) {
	barbershopID := tenantFrom(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Stock < 0 || req.MinStock < 0 {
		httperr.BadRequest(c, "invalid_stock", "Estoque não pode ser negativo.")
		return
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	product, err := set.Products.Create(c.Request.Context(), &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Category:    strings.ToLower(req.Category),
	})
	if err != nil {
		writeStoreError(c, err, "product")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "product_created",
		Entity:       audit.EntityProduct,
		EntityID:     &product.ID,
	})

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	barbershopID := tenantFrom(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
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
	if req.Stock != nil {
		if *req.Stock < 0 {
			httperr.BadRequest(c, "invalid_stock", "Estoque não pode ser negativo.")
			return
		}
		fields["stock"] = *req.Stock
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			httperr.BadRequest(c, "invalid_stock", "Estoque não pode ser negativo.")
			return
		}
		fields["min_stock"] = *req.MinStock
	}
	if req.Category != nil {
		fields["category"] = strings.ToLower(*req.Category)
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	product, err := set.Products.Update(c.Request.Context(), id, fields)
	if err != nil {
		writeStoreError(c, err, "product")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "product_updated",
		Entity:       audit.EntityProduct,
		EntityID:     &product.ID,
	})

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
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

	if err := set.Products.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "product")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "product_deleted",
		Entity:       audit.EntityProduct,
		EntityID:     &id,
	})

	c.Status(http.StatusNoContent)
}
