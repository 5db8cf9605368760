package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T  `json:"data"`
	Total int  `json:"total"`
	Stale bool `json:"stale,omitempty"`
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// StaleList marca a resposta como dado antigo porém válido: o último
// fetch falhou e a coleção anterior foi preservada.
func StaleList[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
		Stale: true,
	})
}
