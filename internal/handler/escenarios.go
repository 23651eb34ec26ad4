package handler

import (
	"net/http"

	"barstock/internal/apierror"
	"barstock/internal/middleware"
	"barstock/internal/service"

	"github.com/gin-gonic/gin"
)

type EscenariosHandler struct{ svc service.EscenarioService }

func NewEscenariosHandler(svc service.EscenarioService) *EscenariosHandler {
	return &EscenariosHandler{svc: svc}
}

// Ejecutar corre el barrido del escenario :flag (rojo, verde o amarillo).
func (h *EscenariosHandler) Ejecutar(c *gin.Context) {
	flag := c.Param("flag")
	actor := middleware.GetClaims(c).Username

	resp, err := h.svc.Ejecutar(c.Request.Context(), flag, actor)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detener descongela el catálogo completo.
func (h *EscenariosHandler) Detener(c *gin.Context) {
	actor := middleware.GetClaims(c).Username

	resp, err := h.svc.DetenerTodos(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
