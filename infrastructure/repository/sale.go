package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/EstebanGomezT/casa-del-churro/infrastructure/database/sqlite"
	"github.com/EstebanGomezT/casa-del-churro/internal/domain"
)

const salesTable = "sales"

var saleColumns = []string{
	"id", "date", "total", "debit", "credit", "cash",
	"boletas_debit", "boletas_credit", "boletas_cash",
	"punto_venta", "folio", "receipt_path", "phone", "created_at",
}

type SaleRepository interface {
	InitSchema(ctx context.Context) error
	Insert(ctx context.Context, sale *domain.Sale) (int64, error)
	FetchBetween(ctx context.Context, dateFrom, dateTo string) ([]*domain.Sale, error)
	Update(ctx context.Context, id int64, fields domain.SaleUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type saleRepository struct {
	conn sqlite.Conn
}

func NewSaleRepository(conn sqlite.Conn) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// InitSchema crea la tabla de ventas y su índice por fecha si no existen.
// Se ejecuta en cada arranque, igual que el resto del esquema es estable.
func (r *saleRepository) InitSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		phone TEXT NOT NULL,
		date TEXT NOT NULL,
		total INTEGER NOT NULL,
		debit INTEGER NOT NULL,
		credit INTEGER NOT NULL,
		cash INTEGER NOT NULL,
		boletas_debit INTEGER NOT NULL DEFAULT 0,
		boletas_credit INTEGER NOT NULL DEFAULT 0,
		boletas_cash INTEGER NOT NULL DEFAULT 0,
		punto_venta TEXT NOT NULL DEFAULT '',
		folio TEXT NOT NULL,
		receipt_path TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schema); err != nil {
			return errors.Wrap(err, "error al crear la tabla sales")
		}

		if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(date)`); err != nil {
			return errors.Wrap(err, "error al crear el índice idx_sales_date")
		}

		return nil
	})
}

func (r *saleRepository) Insert(ctx context.Context, sale *domain.Sale) (int64, error) {
	query, args, err := squirrel.
		Insert(salesTable).
		Columns(
			"phone", "date", "total", "debit", "credit", "cash",
			"boletas_debit", "boletas_credit", "boletas_cash",
			"punto_venta", "folio", "receipt_path", "created_at",
		).
		Values(
			sale.Phone,
			sale.Date,
			sale.Total,
			sale.Debit,
			sale.Credit,
			sale.Cash,
			sale.BoletasDebit,
			sale.BoletasCredit,
			sale.BoletasCash,
			sale.PuntoVenta,
			sale.Folio,
			sale.ReceiptPath,
			sale.CreatedAt,
		).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error al construir la query")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "error al insertar la venta")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "error al obtener el id insertado")
	}

	return id, nil
}

// FetchBetween devuelve las ventas con fecha en [dateFrom, dateTo],
// ordenadas por (fecha, id) ascendente.
func (r *saleRepository) FetchBetween(ctx context.Context, dateFrom, dateTo string) ([]*domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.GtOrEq{"date": dateFrom}).
		Where(squirrel.LtOrEq{"date": dateTo}).
		OrderBy("date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error al construir la query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error al ejecutar la query")
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := r.scanSale(rows)
		if err != nil {
			return nil, errors.Wrap(err, "error al escanear la venta")
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error durante la iteración de filas")
	}

	return sales, nil
}

// Update aplica sólo los campos presentes. Devuelve false si no hay
// ningún campo reconocido o si el id no existe. No valida valores:
// eso es responsabilidad de la capa de validación.
func (r *saleRepository) Update(ctx context.Context, id int64, fields domain.SaleUpdate) (bool, error) {
	setMap := map[string]interface{}{}
	if fields.Date != nil {
		setMap["date"] = *fields.Date
	}
	if fields.Total != nil {
		setMap["total"] = *fields.Total
	}
	if fields.Debit != nil {
		setMap["debit"] = *fields.Debit
	}
	if fields.Credit != nil {
		setMap["credit"] = *fields.Credit
	}
	if fields.Cash != nil {
		setMap["cash"] = *fields.Cash
	}
	if fields.BoletasDebit != nil {
		setMap["boletas_debit"] = *fields.BoletasDebit
	}
	if fields.BoletasCredit != nil {
		setMap["boletas_credit"] = *fields.BoletasCredit
	}
	if fields.BoletasCash != nil {
		setMap["boletas_cash"] = *fields.BoletasCash
	}
	if fields.PuntoVenta != nil {
		setMap["punto_venta"] = *fields.PuntoVenta
	}
	if fields.Folio != nil {
		setMap["folio"] = *fields.Folio
	}

	if len(setMap) == 0 {
		return false, nil
	}

	query, args, err := squirrel.
		Update(salesTable).
		SetMap(setMap).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "error al construir la query")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "error al actualizar la venta")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "error al obtener filas afectadas")
	}

	return rowsAffected > 0, nil
}

// Delete devuelve true si existía una fila y fue eliminada.
func (r *saleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := squirrel.
		Delete(salesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "error al construir la query")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "error al eliminar la venta")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "error al obtener filas afectadas")
	}

	return rowsAffected > 0, nil
}

func (r *saleRepository) scanSale(rows *sql.Rows) (*domain.Sale, error) {
	sale := &domain.Sale{}

	err := rows.Scan(
		&sale.ID,
		&sale.Date,
		&sale.Total,
		&sale.Debit,
		&sale.Credit,
		&sale.Cash,
		&sale.BoletasDebit,
		&sale.BoletasCredit,
		&sale.BoletasCash,
		&sale.PuntoVenta,
		&sale.Folio,
		&sale.ReceiptPath,
		&sale.Phone,
		&sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return sale, nil
}
