package handler

import (
	"net/http"
	"strconv"
	"time"

	"barstock/internal/apierror"
	"barstock/internal/dto"
	"barstock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccionesHandler struct{ svc service.AccionService }

func NewAccionesHandler(svc service.AccionService) *AccionesHandler {
	return &AccionesHandler{svc: svc}
}

// Listar devuelve el historial global con filtros opcionales por query:
// tipo, actor, producto_id, desde, hasta (RFC 3339) y limit.
func (h *AccionesHandler) Listar(c *gin.Context) {
	filter := dto.AccionFilter{
		Tipo:  c.Query("tipo"),
		Actor: c.Query("actor"),
	}

	if pid := c.Query("producto_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("producto_id inválido"))
			return
		}
		filter.ProductoID = &id
	}
	if desde := c.Query("desde"); desde != "" {
		t, err := time.Parse(time.RFC3339, desde)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde inválido (RFC 3339)"))
			return
		}
		filter.Desde = &t
	}
	if hasta := c.Query("hasta"); hasta != "" {
		t, err := time.Parse(time.RFC3339, hasta)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hasta inválido (RFC 3339)"))
			return
		}
		filter.Hasta = &t
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, apierror.New("limit inválido"))
			return
		}
		filter.Limit = n
	}

	resp, err := h.svc.Historial(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar acciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
