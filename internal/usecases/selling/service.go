package selling

import (
	"context"
	"time"

	"github.com/EstebanGomezT/casa-del-churro/infrastructure/repository"
	"github.com/EstebanGomezT/casa-del-churro/internal/domain"
	"github.com/EstebanGomezT/casa-del-churro/pkg/apiErrors"
	"github.com/EstebanGomezT/casa-del-churro/pkg/utils"
)

// SaleService expone el registro de ventas: alta desde el formulario,
// listado mensual, actualización parcial y eliminación.
type SaleService interface {
	CreateSale(ctx context.Context, input CreateSaleInput) (int64, error)
	ListMonth(ctx context.Context, month string, now time.Time) ([]*domain.Sale, error)
	UpdateSale(ctx context.Context, id int64, req UpdateSaleRequest) error
	DeleteSale(ctx context.Context, id int64) error
}

// CreateSaleInput trae los campos del formulario tal cual llegaron.
// La validación y normalización ocurre acá, no en el handler.
type CreateSaleInput struct {
	Date          string
	Total         string
	Debit         string
	Credit        string
	Cash          string
	BoletasDebit  string
	BoletasCredit string
	BoletasCash   string
	Folio         string
	PuntoVenta    string
	ReceiptPath   string
}

type Service struct {
	saleRepo repository.SaleRepository
}

func NewService(saleRepo repository.SaleRepository) SaleService {
	return &Service{
		saleRepo: saleRepo,
	}
}

func (s *Service) CreateSale(ctx context.Context, input CreateSaleInput) (int64, error) {
	sale, err := validateCreate(input)
	if err != nil {
		return 0, err
	}

	// Igual que el resto del registro, created_at queda en hora local
	// con precisión de segundos
	sale.Phone = domain.ChannelWeb
	sale.CreatedAt = time.Now().Format("2006-01-02T15:04:05")

	id, err := s.saleRepo.Insert(ctx, sale)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ListMonth devuelve las ventas del mes pedido. Si el mes es el actual,
// el rango se recorta a hoy.
func (s *Service) ListMonth(ctx context.Context, month string, now time.Time) ([]*domain.Sale, error) {
	from, to, err := utils.MonthRange(month, now)
	if err != nil {
		return nil, apiErrors.New(apiErrors.ErrInvalidFormat, "Formato: YYYY-MM")
	}

	return s.saleRepo.FetchBetween(ctx, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (s *Service) UpdateSale(ctx context.Context, id int64, req UpdateSaleRequest) error {
	fields, err := validateUpdate(req)
	if err != nil {
		return err
	}

	if fields.Empty() {
		return apiErrors.New(apiErrors.ErrMissingRequiredData, "No hay campos para actualizar")
	}

	updated, err := s.saleRepo.Update(ctx, id, fields)
	if err != nil {
		return err
	}

	if !updated {
		return apiErrors.New(apiErrors.ErrSaleNotFound, "No encontrado")
	}

	return nil
}

// DeleteSale elimina el registro. La foto de la boleta queda en disco:
// el archivo no se borra junto con la venta.
func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	deleted, err := s.saleRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if !deleted {
		return apiErrors.New(apiErrors.ErrSaleNotFound, "No encontrado")
	}

	return nil
}
