package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httperr"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/stats"
)

type DashboardHandler struct {
	db    *gorm.DB
	stats *stats.Service
}

func NewDashboardHandler(db *gorm.DB, statsSvc *stats.Service) *DashboardHandler {
	return &DashboardHandler{db: db, stats: statsSvc}
}

// Stats devolve as métricas agregadas do painel. Cada métrica é
// independente: falha parcial vira campo nulo, nunca erro do request.
func (h *DashboardHandler) Stats(c *gin.Context) {
	barbershopID := tenantFrom(c)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	m := h.stats.Dashboard(c.Request.Context(), &shop, wantsRefresh(c))

	c.JSON(http.StatusOK, m)
}
