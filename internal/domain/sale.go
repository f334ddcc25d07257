package domain

// Canales de ingreso de ventas. El registro guarda por cuál canal
// llegó cada venta en el campo Phone.
const (
	ChannelWeb = "web"
)

// PuntosVentaValidos es el conjunto fijo de puntos de venta aceptados.
var PuntosVentaValidos = map[string]bool{
	"Carro Plaza":    true,
	"Carro Amarillo": true,
	"Carro Chico":    true,
	"Carro Tren":     true,
	"Modulo":         true,
}

// Sale es una venta diaria registrada por un punto de venta.
// Los montos se guardan en pesos enteros; total no se valida contra
// debit+credit+cash (responsabilidad de quien registra).
type Sale struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"`
	Total         int64  `json:"total"`
	Debit         int64  `json:"debit"`
	Credit        int64  `json:"credit"`
	Cash          int64  `json:"cash"`
	BoletasDebit  int64  `json:"boletas_debit"`
	BoletasCredit int64  `json:"boletas_credit"`
	BoletasCash   int64  `json:"boletas_cash"`
	PuntoVenta    string `json:"punto_venta"`
	Folio         string `json:"folio"`
	ReceiptPath   string `json:"receipt_path"`
	Phone         string `json:"phone"`
	CreatedAt     string `json:"created_at"`
}

// SaleUpdate representa una actualización parcial: cada campo presente
// se aplica, los nil se ignoran. CreatedAt, Phone y ReceiptPath no son
// actualizables.
type SaleUpdate struct {
	Date          *string
	Total         *int64
	Debit         *int64
	Credit        *int64
	Cash          *int64
	BoletasDebit  *int64
	BoletasCredit *int64
	BoletasCash   *int64
	PuntoVenta    *string
	Folio         *string
}

// Empty indica si la actualización no trae ningún campo reconocido.
func (u SaleUpdate) Empty() bool {
	return u.Date == nil &&
		u.Total == nil &&
		u.Debit == nil &&
		u.Credit == nil &&
		u.Cash == nil &&
		u.BoletasDebit == nil &&
		u.BoletasCredit == nil &&
		u.BoletasCash == nil &&
		u.PuntoVenta == nil &&
		u.Folio == nil
}
