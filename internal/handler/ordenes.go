package handler

import (
	"errors"
	"net/http"

	"barstock/internal/apierror"
	"barstock/internal/dto"
	"barstock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdenesHandler struct{ svc service.OrdenService }

func NewOrdenesHandler(svc service.OrdenService) *OrdenesHandler {
	return &OrdenesHandler{svc: svc}
}

// Generar arma el pedido de reposición del distribuidor sin mandarlo:
// la UI lo muestra y deja copiar el mensaje o abrir WhatsApp.
func (h *OrdenesHandler) Generar(c *gin.Context) {
	distribuidorID, err := uuid.Parse(c.Param("distribuidorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Generar(c.Request.Context(), distribuidorID)
	if err != nil {
		if errors.Is(err, service.ErrDistribuidorNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Enviar genera el pedido y lo encola para despacho por mail con PDF.
func (h *OrdenesHandler) Enviar(c *gin.Context) {
	distribuidorID, err := uuid.Parse(c.Param("distribuidorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.EnviarOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Enviar(c.Request.Context(), distribuidorID, req)
	if err != nil {
		if errors.Is(err, service.ErrDistribuidorNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
