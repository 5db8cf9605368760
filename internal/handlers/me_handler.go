package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httperr"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/middleware"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/tenant"
)

type MeHandler struct {
	db       *gorm.DB
	resolver *tenant.Resolver
}

func NewMeHandler(db *gorm.DB, resolver *tenant.Resolver) *MeHandler {
	return &MeHandler{db: db, resolver: resolver}
}

// GetMe devolve o usuário da sessão e sua barbearia. A barbearia sai
// do resolver: sessão sem tenant resolvível é sessão inválida.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	shop, err := h.resolver.Resolve(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, tenant.ErrUnresolved) {
			httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
			return
		}
		httperr.Internal(c, "failed_to_resolve_tenant", "Erro ao resolver a barbearia.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       userPayload(&user),
		"barbershop": barbershopPayload(shop),
	})
}
