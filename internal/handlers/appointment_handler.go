package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/audit"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httperr"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httpresp"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/resources"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
	usecase "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/usecase/appointment"
)

type AppointmentHandler struct {
	registry *resources.Registry
	audit    *audit.Dispatcher

	createUC   *usecase.CreateAppointment
	confirmUC  *usecase.ConfirmAppointment
	completeUC *usecase.CompleteAppointment
	cancelUC   *usecase.CancelAppointment
}

func NewAppointmentHandler(
	registry *resources.Registry,
	auditD *audit.Dispatcher,
	createUC *usecase.CreateAppointment,
	confirmUC *usecase.ConfirmAppointment,
	completeUC *usecase.CompleteAppointment,
	cancelUC *usecase.CancelAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		registry:   registry,
		audit:      auditD,
		createUC:   createUC,
		confirmUC:  confirmUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID       uint   `json:"client_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Notes          string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// writeBusinessError mapeia os códigos de negócio do agendamento
// para o status HTTP correspondente.
func writeBusinessError(c *gin.Context, err error) bool {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		return false
	}

	switch code {
	case "client_not_found", "professional_not_found", "service_not_found", "appointment_not_found":
		httperr.NotFound(c, code, "Registro não encontrado.")
	case "time_conflict":
		httperr.Conflict(c, code, "Já existe agendamento nesse horário.")
	case "invalid_state":
		httperr.Conflict(c, code, "Transição de status inválida.")
	default:
		httperr.BadRequest(c, code, "Agendamento inválido.")
	}
	return true
}

// --------- Handlers ---------

func (h *AppointmentHandler) List(c *gin.Context) {
	barbershopID := tenantFrom(c)

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}
	st := set.Appointments

	if err := resources.Ensure(c.Request.Context(), st, wantsRefresh(c)); err != nil {
		if st.State() != store.Ready && st.Len() == 0 {
			httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
			return
		}
		httpresp.StaleList(c, filterAppointments(st.Rows(), c))
		return
	}

	httpresp.List(c, filterAppointments(st.Rows(), c))
}

func filterAppointments(rows []*models.Appointment, c *gin.Context) []*models.Appointment {
	date := strings.TrimSpace(c.Query("date"))
	status := strings.TrimSpace(c.Query("status"))
	professional := strings.TrimSpace(c.Query("professional_id"))

	var proID uint64
	if professional != "" {
		proID, _ = strconv.ParseUint(professional, 10, 64)
	}

	out := make([]*models.Appointment, 0, len(rows))
	for _, ap := range rows {
		if date != "" && ap.Date != date {
			continue
		}
		if status != "" && ap.Status != status {
			continue
		}
		if proID != 0 && ap.ProfessionalID != uint(proID) {
			continue
		}
		out = append(out, ap)
	}
	return out
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	barbershopID := tenantFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	row, err := h.createUC.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		BarbershopID:   barbershopID,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	ap, err := set.Appointments.Create(c.Request.Context(), row)
	if err != nil {
		writeStoreError(c, err, "appointment")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "appointment_created",
		Entity:       audit.EntityAppointment,
		EntityID:     &ap.ID,
	})

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	barbershopID := tenantFrom(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	fields := store.Fields{}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	set, _ := h.registry.ForTenant(c.Request.Context(), barbershopID)
	if set == nil {
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
		return
	}

	ap, err := set.Appointments.Update(c.Request.Context(), id, fields)
	if err != nil {
		writeStoreError(c, err, "appointment")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "appointment_updated",
		Entity:       audit.EntityAppointment,
		EntityID:     &ap.ID,
	})

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
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

	if err := set.Appointments.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "appointment")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       "appointment_deleted",
		Entity:       audit.EntityAppointment,
		EntityID:     &id,
	})

	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, "appointment_confirmed", h.confirmUC.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, "appointment_completed", h.completeUC.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, "appointment_cancelled", h.cancelUC.Execute)
}

// transition executa uma mudança de status validada pelo domínio e
// aplica o update pelo store do tenant.
func (h *AppointmentHandler) transition(
	c *gin.Context,
	action string,
	execute func(ctx context.Context, barbershopID, appointmentID uint) (store.Fields, error),
) {
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

	fields, err := execute(c.Request.Context(), barbershopID, id)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	ap, err := set.Appointments.Update(c.Request.Context(), id, fields)
	if err != nil {
		writeStoreError(c, err, "appointment")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userFrom(c),
		Action:       action,
		Entity:       audit.EntityAppointment,
		EntityID:     &ap.ID,
	})

	c.JSON(http.StatusOK, ap)
}
