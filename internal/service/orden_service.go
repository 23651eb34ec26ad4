package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"barstock/internal/dto"
	"barstock/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrDistribuidorNoEncontrado = errors.New("distribuidor no encontrado")

// ColaOrdenes encola el envío asíncrono de un pedido. La implementa el
// dispatcher del pool de workers; el servicio nunca manda el mail en línea.
type ColaOrdenes interface {
	EncolarOrden(ctx context.Context, orden *dto.OrdenResponse, email string) error
}

// OrdenService arma pedidos de reposición por distribuidor: toma todos sus
// productos con nivel par definido y calcula el faltante contra el stock
// total (barra 1 + barra 2 + cámara). Los productos congelados cuentan
// igual: el congelado es visibilidad, no stock.
type OrdenService interface {
	Generar(ctx context.Context, distribuidorID uuid.UUID) (*dto.OrdenResponse, error)
	Enviar(ctx context.Context, distribuidorID uuid.UUID, req dto.EnviarOrdenRequest) (*dto.OrdenResponse, error)
}

type ordenService struct {
	distribuidorRepo repository.DistribuidorRepository
	productoRepo     repository.ProductoRepository
	nivelParRepo     repository.NivelParRepository
	cola             ColaOrdenes
}

func NewOrdenService(
	distribuidorRepo repository.DistribuidorRepository,
	productoRepo repository.ProductoRepository,
	nivelParRepo repository.NivelParRepository,
	cola ColaOrdenes,
) OrdenService {
	return &ordenService{
		distribuidorRepo: distribuidorRepo,
		productoRepo:     productoRepo,
		nivelParRepo:     nivelParRepo,
		cola:             cola,
	}
}

func (s *ordenService) Generar(ctx context.Context, distribuidorID uuid.UUID) (*dto.OrdenResponse, error) {
	d, err := s.distribuidorRepo.ObtenerPorID(ctx, distribuidorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDistribuidorNoEncontrado
		}
		return nil, err
	}

	productos, err := s.productoRepo.ListarPorDistribuidor(ctx, distribuidorID)
	if err != nil {
		return nil, err
	}

	niveles, err := s.nivelParRepo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	objetivos := make(map[uuid.UUID]decimal.Decimal, len(niveles))
	for _, np := range niveles {
		objetivos[np.ProductoID] = np.Objetivo
	}

	var items []dto.OrdenItem
	for _, p := range productos {
		objetivo, ok := objetivos[p.ID]
		if !ok {
			continue // sin par definido, no se pide
		}
		actual := p.CantidadTotal()
		faltante := objetivo.Sub(actual)
		if faltante.LessThanOrEqual(decimal.Zero) {
			continue
		}
		items = append(items, dto.OrdenItem{
			ProductoID: p.ID,
			Nombre:     p.Nombre,
			Unidad:     p.UnidadMedida,
			Actual:     actual,
			Objetivo:   objetivo,
			Faltante:   faltante,
		})
	}

	orden := &dto.OrdenResponse{
		DistribuidorID: d.ID,
		Distribuidor:   d.Nombre,
		Telefono:       d.Telefono,
		Items:          items,
		Mensaje:        armarMensaje(d.Nombre, items),
	}
	return orden, nil
}

// Enviar genera el pedido y lo encola para despacho por mail (PDF adjunto).
// Rechaza pedidos vacíos: no tiene sentido molestar al distribuidor.
func (s *ordenService) Enviar(ctx context.Context, distribuidorID uuid.UUID, req dto.EnviarOrdenRequest) (*dto.OrdenResponse, error) {
	orden, err := s.Generar(ctx, distribuidorID)
	if err != nil {
		return nil, err
	}
	if len(orden.Items) == 0 {
		return nil, errors.New("no hay productos por debajo del par para este distribuidor")
	}
	if err := s.cola.EncolarOrden(ctx, orden, req.Email); err != nil {
		return nil, fmt.Errorf("encolar pedido: %w", err)
	}
	return orden, nil
}

// armarMensaje genera el texto plano del pedido, listo para pegar en
// WhatsApp o mandar por mail.
func armarMensaje(distribuidor string, items []dto.OrdenItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pedido de reposición — %s\n", distribuidor)
	fmt.Fprintf(&b, "Fecha: %s\n\n", time.Now().Format("02/01/2006"))

	if len(items) == 0 {
		b.WriteString("Sin productos por debajo del par.\n")
		return b.String()
	}

	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %s %s\n", item.Nombre, item.Faltante.String(), item.Unidad)
	}
	fmt.Fprintf(&b, "\nTotal: %d productos\n", len(items))
	return b.String()
}
