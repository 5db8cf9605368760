package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httperr"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/middleware"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

func tenantFrom(c *gin.Context) uint {
	return c.MustGet(middleware.ContextBarbershopID).(uint)
}

func userFrom(c *gin.Context) *uint {
	id := c.MustGet(middleware.ContextUserID).(uint)
	return &id
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func wantsRefresh(c *gin.Context) bool {
	return c.Query("refresh") == "true"
}

// jsonField prepara valores de colunas serializer:json para updates
// parciais por mapa, que não passam pelo serializer do gorm.
func jsonField(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// writeStoreError traduz os erros do store para HTTP. Falha de
// mutação nunca invalida a coleção: só o chamador fica sabendo.
func writeStoreError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httperr.NotFound(c, entity+"_not_found", "Registro não encontrado.")
	case errors.Is(err, store.ErrNotReady):
		httperr.Unavailable(c, "store_not_ready", "Dados ainda carregando. Tente novamente.")
	case errors.Is(err, store.ErrNoTenant):
		httperr.Unauthorized(c, "tenant_not_resolved", "Barbearia não resolvida.")
	default:
		httperr.Internal(c, "failed_to_save_"+entity, "Erro ao salvar o registro.")
	}
}
