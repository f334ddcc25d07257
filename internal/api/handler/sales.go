package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/EstebanGomezT/casa-del-churro/infrastructure/filestore"
	"github.com/EstebanGomezT/casa-del-churro/internal/usecases/selling"
	"github.com/EstebanGomezT/casa-del-churro/pkg/apiErrors"
	"github.com/EstebanGomezT/casa-del-churro/pkg/log"
)

// maxUploadBytes limita el tamaño del multipart con la foto de boleta
const maxUploadBytes = 16 << 20

type createSaleResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// CreateSale registra una venta desde el formulario multipart. La foto
// de la boleta se guarda antes del insert; si la validación posterior o
// el insert fallan, el archivo queda huérfano en disco (brecha conocida,
// igual que en el resto del flujo no hay limpieza compensatoria).
func CreateSale(service selling.SaleService, store *filestore.FileStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formulario inválido")
			return
		}

		receiptPath := ""
		file, header, err := r.FormFile("receipt")
		if err == nil && header.Filename != "" {
			defer file.Close()

			receiptPath, err = store.SaveReceipt(file, header.Filename, time.Now())
			if err != nil {
				logger.WithError(err).Error("create-sale: error al guardar la boleta")
				apiErrors.WriteError(w, apiErrors.ErrFileOperation, err.Error())
				return
			}
		}

		input := selling.CreateSaleInput{
			Date:          r.FormValue("date"),
			Total:         r.FormValue("total"),
			Debit:         r.FormValue("debit"),
			Credit:        r.FormValue("credit"),
			Cash:          r.FormValue("cash"),
			BoletasDebit:  r.FormValue("boletas_debit"),
			BoletasCredit: r.FormValue("boletas_credit"),
			BoletasCash:   r.FormValue("boletas_cash"),
			Folio:         r.FormValue("folio"),
			PuntoVenta:    r.FormValue("punto_venta"),
			ReceiptPath:   receiptPath,
		}

		id, err := service.CreateSale(r.Context(), input)
		if err != nil {
			logger.WithError(err).Warn("create-sale: venta rechazada")
			apiErrors.Write(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"sale_id":     id,
			"punto_venta": input.PuntoVenta,
			"date":        input.Date,
		}).Info("create-sale: venta registrada")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(createSaleResponse{OK: true, ID: id}); err != nil {
			logger.WithError(err).Error("create-sale: error al codificar la respuesta")
		}
	})
}

// ListSales devuelve las ventas del mes pedido en ?month=YYYY-MM
func ListSales(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		month := r.URL.Query().Get("month")

		sales, err := service.ListMonth(r.Context(), month, time.Now())
		if err != nil {
			logger.WithError(err).WithField("month", month).Warn("list-sales: error al listar ventas")
			apiErrors.Write(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sales); err != nil {
			logger.WithError(err).Error("list-sales: error al codificar la respuesta")
		}
	})
}

// UpdateSale aplica una actualización parcial sobre la venta indicada
func UpdateSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, ok := saleID(w, r)
		if !ok {
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Error al leer la requisición")
			return
		}

		// Cuerpo vacío o {} se rechazan antes de mirar los campos
		var raw map[string]interface{}
		if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "No hay datos")
			return
		}

		var req selling.UpdateSaleRequest
		if err := json.Unmarshal(body, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "JSON inválido")
			return
		}

		if err := service.UpdateSale(r.Context(), id, req); err != nil {
			logger.WithError(err).WithField("sale_id", id).Warn("update-sale: actualización rechazada")
			apiErrors.Write(w, err)
			return
		}

		logger.WithField("sale_id", id).Info("update-sale: venta actualizada")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(okResponse{OK: true}); err != nil {
			logger.WithError(err).Error("update-sale: error al codificar la respuesta")
		}
	})
}

// DeleteSale elimina la venta indicada. La foto de la boleta no se
// borra del disco.
func DeleteSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, ok := saleID(w, r)
		if !ok {
			return
		}

		if err := service.DeleteSale(r.Context(), id); err != nil {
			logger.WithError(err).WithField("sale_id", id).Warn("delete-sale: eliminación rechazada")
			apiErrors.Write(w, err)
			return
		}

		logger.WithField("sale_id", id).Info("delete-sale: venta eliminada")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(okResponse{OK: true}); err != nil {
			logger.WithError(err).Error("delete-sale: error al codificar la respuesta")
		}
	})
}

// saleID extrae y valida el parámetro :id de la ruta
func saleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de venta inválido")
		return 0, false
	}

	return id, true
}
