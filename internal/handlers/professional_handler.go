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
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/uploads"
)

type ProfessionalHandler struct {
	registry *resources.Registry
	audit    *audit.Dispatcher
	uploader *uploads.Uploader
}

func NewProfessionalHandler(
	registry *resources.Registry,
	auditD *audit.Dispatcher,
	uploader *uploads.Uploader,
) *ProfessionalHandler {
	return &ProfessionalHandler{
		registry: registry,
		audit:    auditD,
		uploader: uploader,
	}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name        string   `json:"name" binding:"required"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Specialties []string `json:"specialties"`
	Commission  float64  `json:"commission"`
	WorkDays    []int    `json:"work_days"`
	WorkStart   string   `json:"work_start"`
	WorkEnd     string   `json:"work_end"`
}

type UpdateProfessionalRequest struct {
	Name        *string   `json:"name,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Specialties *[]string `json:"specialties,omitempty"`
	Commission  *float64  `json:"commission,omitempty"`
	WorkDays    *[]int    `json:"work_days,omitempty"`
	WorkStart   *string   `json:"work_start,omitempty"`
	WorkEnd     *string   `json:"work_end,omitempty"`
	Active      *bool     `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	barbershopID := tenantFrom(c)

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}
	st := set.Professionals

	if err := resources.Ensure(c.Request.Context(), st, wantsRefresh(c)); err != nil {
		if st.State() != store.Ready && st.Len() == 0 {
			httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
			return
		}
		httpresp.StaleList(c, filterProfessionals(st.Rows(), c))
		return
	}

	httpresp.List(c, filterProfessionals(st.Rows(), c))
}

func filterProfessionals(rows []*models.Professional, c *gin.Context) []*models.Professional {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	activeStr := strings.TrimSpace(c.Query("active"))

	out := make([]*models.Professional, 0, len(rows))
	for _, p := range rows {
		if activeStr == "true" && !p.Active {
			continue
		}
		if activeStr == "false" && p.Active {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	barbershopID := tenantFrom(c)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Commission < 0 || req.Commission > 100 {
		httperr.BadRequest(c, "invalid_commission", "Comissão deve estar entre 0 e 100.")
		return
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	pro, err := set.Professionals.Create(c.Request.Context(), &models.Professional{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Specialties: req.Specialties,
		Commission:  req.Commission,
		WorkDays:    req.WorkDays,
		WorkStart:   req.WorkStart,
		WorkEnd:     req.WorkEnd,
		Active:      true,
	})
	if err != nil {
		writeStoreError(c, err, "professional")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "professional_created",
		Entity:       audit.EntityProfessional,
		EntityID:     &pro.ID,
	})

	c.JSON(http.StatusCreated, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	barbershopID := tenantFrom(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateProfessionalRequest
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
	if req.Specialties != nil {
		fields["specialties"] = jsonField(*req.Specialties)
	}
	if req.Commission != nil {
		if *req.Commission < 0 || *req.Commission > 100 {
			httperr.BadRequest(c, "invalid_commission", "Comissão deve estar entre 0 e 100.")
			return
		}
		fields["commission"] = *req.Commission
	}
	if req.WorkDays != nil {
		fields["work_days"] = jsonField(*req.WorkDays)
	}
	if req.WorkStart != nil {
		fields["work_start"] = *req.WorkStart
	}
	if req.WorkEnd != nil {
		fields["work_end"] = *req.WorkEnd
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	pro, err := set.Professionals.Update(c.Request.Context(), id, fields)
	if err != nil {
		writeStoreError(c, err, "professional")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "professional_updated",
		Entity:       audit.EntityProfessional,
		EntityID:     &pro.ID,
	})

	c.JSON(http.StatusOK, pro)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
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

	if err := set.Professionals.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "professional")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "professional_deleted",
		Entity:       audit.EntityProfessional,
		EntityID:     &id,
	})

	c.Status(http.StatusNoContent)
}

// UploadPhoto recebe a imagem em multipart, converte e grava no S3,
// e persiste a URL via store (eco autoritativo como qualquer update).
func (h *ProfessionalHandler) UploadPhoto(c *gin.Context) {
	barbershopID := tenantFrom(c)

	if h.uploader == nil {
		httperr.Unavailable(c, "uploads_disabled", "Upload de fotos não está configurado.")
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie o arquivo no campo photo.")
		return
	}
	defer file.Close()

	url, err := h.uploader.ProfessionalPhoto(c.Request.Context(), barbershopID, id, file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Erro ao processar a foto.")
		return
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	pro, err := set.Professionals.Update(c.Request.Context(), id, store.Fields{"photo_url": url})
	if err != nil {
		writeStoreError(c, err, "professional")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "professional_photo_updated",
		Entity:       audit.EntityProfessional,
		EntityID:     &pro.ID,
	})

	c.JSON(http.StatusOK, pro)
}
