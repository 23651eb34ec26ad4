package handler

import (
	"net/http"

	"barstock/internal/apierror"
	"barstock/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// Obtener devuelve el catálogo completo. Si la base no responde y hay
// snapshot espejado, la respuesta viene con stale=true y la fecha del
// snapshot; sin snapshot, 503.
func (h *CatalogoHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Catálogo no disponible"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
