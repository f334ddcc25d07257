package selling

import (
	"bytes"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/EstebanGomezT/casa-del-churro/internal/domain"
	"github.com/EstebanGomezT/casa-del-churro/pkg/apiErrors"
	"github.com/EstebanGomezT/casa-del-churro/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawNumber acepta un campo numérico que puede llegar como número JSON
// o como texto con separadores ("1.000", "$ 1,500"). Se guarda el token
// crudo y la normalización a entero la hace utils.ParseDigits.
type RawNumber string

func (n *RawNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = RawNumber(s)
		return nil
	}

	*n = RawNumber(bytes.TrimSpace(data))
	return nil
}

// UpdateSaleRequest es la actualización parcial que llega por la API:
// cada campo es opcional y sólo los presentes se validan y aplican.
type UpdateSaleRequest struct {
	Date          *string    `json:"date"`
	Total         *RawNumber `json:"total"`
	Debit         *RawNumber `json:"debit"`
	Credit        *RawNumber `json:"credit"`
	Cash          *RawNumber `json:"cash"`
	BoletasDebit  *RawNumber `json:"boletas_debit"`
	BoletasCredit *RawNumber `json:"boletas_credit"`
	BoletasCash   *RawNumber `json:"boletas_cash"`
	PuntoVenta    *string    `json:"punto_venta"`
	Folio         *string    `json:"folio"`
}

// validateCreate aplica las reglas de alta: fecha YYYY-MM-DD, los siete
// campos numéricos obligatorios, folio no vacío, boleta presente y
// punto de venta dentro del conjunto fijo.
func validateCreate(input CreateSaleInput) (*domain.Sale, error) {
	if _, err := utils.ParseDate(strings.TrimSpace(input.Date)); err != nil {
		return nil, apiErrors.New(apiErrors.ErrInvalidFormat, "Fecha inválida (YYYY-MM-DD)")
	}

	numerics := []string{
		input.Total, input.Debit, input.Credit, input.Cash,
		input.BoletasDebit, input.BoletasCredit, input.BoletasCash,
	}

	values := make([]int64, 0, len(numerics))
	for _, raw := range numerics {
		v, err := utils.ParseDigits(raw)
		if err != nil {
			return nil, apiErrors.New(apiErrors.ErrMissingRequiredData, "Todos los campos numéricos son obligatorios")
		}
		values = append(values, v)
	}

	folio := strings.TrimSpace(input.Folio)
	if folio == "" {
		return nil, apiErrors.New(apiErrors.ErrMissingRequiredData, "El folio es obligatorio")
	}

	if input.ReceiptPath == "" {
		return nil, apiErrors.New(apiErrors.ErrMissingRequiredData, "La boleta (imagen) es obligatoria")
	}

	puntoVenta := strings.TrimSpace(input.PuntoVenta)
	if !domain.PuntosVentaValidos[puntoVenta] {
		return nil, apiErrors.New(apiErrors.ErrInvalidValue, "Punto de venta inválido")
	}

	return &domain.Sale{
		Date:          strings.TrimSpace(input.Date),
		Total:         values[0],
		Debit:         values[1],
		Credit:        values[2],
		Cash:          values[3],
		BoletasDebit:  values[4],
		BoletasCredit: values[5],
		BoletasCash:   values[6],
		PuntoVenta:    puntoVenta,
		Folio:         folio,
		ReceiptPath:   input.ReceiptPath,
	}, nil
}

// validateUpdate aplica las mismas reglas que el alta pero sólo a los
// campos presentes en el payload.
func validateUpdate(req UpdateSaleRequest) (domain.SaleUpdate, error) {
	var fields domain.SaleUpdate

	if req.Date != nil {
		date := strings.TrimSpace(*req.Date)
		if _, err := utils.ParseDate(date); err != nil {
			return domain.SaleUpdate{}, apiErrors.New(apiErrors.ErrInvalidFormat, "Fecha inválida")
		}
		fields.Date = &date
	}

	numerics := []struct {
		name  string
		raw   *RawNumber
		field **int64
	}{
		{"total", req.Total, &fields.Total},
		{"debit", req.Debit, &fields.Debit},
		{"credit", req.Credit, &fields.Credit},
		{"cash", req.Cash, &fields.Cash},
		{"boletas_debit", req.BoletasDebit, &fields.BoletasDebit},
		{"boletas_credit", req.BoletasCredit, &fields.BoletasCredit},
		{"boletas_cash", req.BoletasCash, &fields.BoletasCash},
	}

	for _, n := range numerics {
		if n.raw == nil {
			continue
		}
		v, err := utils.ParseDigits(string(*n.raw))
		if err != nil {
			return domain.SaleUpdate{}, apiErrors.New(
				apiErrors.ErrInvalidFormat,
				fmt.Sprintf("%s debe ser un número", n.name),
			)
		}
		value := v
		*n.field = &value
	}

	if req.Folio != nil {
		folio := strings.TrimSpace(*req.Folio)
		if folio == "" {
			return domain.SaleUpdate{}, apiErrors.New(apiErrors.ErrMissingRequiredData, "Folio vacío")
		}
		fields.Folio = &folio
	}

	if req.PuntoVenta != nil {
		puntoVenta := strings.TrimSpace(*req.PuntoVenta)
		if !domain.PuntosVentaValidos[puntoVenta] {
			return domain.SaleUpdate{}, apiErrors.New(apiErrors.ErrInvalidValue, "Punto de venta inválido")
		}
		fields.PuntoVenta = &puntoVenta
	}

	return fields, nil
}
