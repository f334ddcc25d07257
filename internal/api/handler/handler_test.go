package handler

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/EstebanGomezT/casa-del-churro/infrastructure/filestore"
	"github.com/EstebanGomezT/casa-del-churro/infrastructure/repository/mocks"
	"github.com/EstebanGomezT/casa-del-churro/internal/api/handler/router"
	"github.com/EstebanGomezT/casa-del-churro/internal/config"
	"github.com/EstebanGomezT/casa-del-churro/internal/domain"
	"github.com/EstebanGomezT/casa-del-churro/internal/usecases/reporting"
	"github.com/EstebanGomezT/casa-del-churro/internal/usecases/selling"
	"github.com/EstebanGomezT/casa-del-churro/pkg/log"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

type testEnv struct {
	router     router.Router
	repo       *mocks.MockSaleRepository
	reportsDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockSaleRepository(ctrl)

	reportsDir := t.TempDir()
	store, err := filestore.New(config.Storage{
		ReceiptsDir: t.TempDir(),
		ReportsDir:  reportsDir,
	})
	require.NoError(t, err)

	saleService := selling.NewService(mockRepo)
	reportService := reporting.NewService(mockRepo, store)

	rt := router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Files(store)...),
		router.WithRoutes(Sales(saleService, store)...),
		router.WithRoutes(Reports(reportService)...),
	)

	return &testEnv{router: rt, repo: mockRepo, reportsDir: reportsDir}
}

// multipartSale arma el formulario de alta; con withReceipt adjunta una
// imagen PNG real en el campo receipt
func multipartSale(t *testing.T, fields map[string]string, withReceipt bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if withReceipt {
		part, err := writer.CreateFormFile("receipt", "boleta.png")
		require.NoError(t, err)

		img := image.NewRGBA(image.Rect(0, 0, 10, 10))
		img.Set(0, 0, color.RGBA{R: 255, A: 255})
		require.NoError(t, png.Encode(part, img))
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"date":           "2024-05-17",
		"total":          "25.000",
		"debit":          "10000",
		"credit":         "5000",
		"cash":           "10000",
		"boletas_debit":  "3",
		"boletas_credit": "2",
		"boletas_cash":   "5",
		"folio":          "F-1234",
		"punto_venta":    "Carro Plaza",
	}
}

func TestCreateSaleHandler(t *testing.T) {
	t.Run("alta válida responde 201 con el id", func(t *testing.T) {
		env := newTestEnv(t)

		var inserted *domain.Sale
		env.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sale *domain.Sale) (int64, error) {
				inserted = sale
				return 42, nil
			})

		body, contentType := multipartSale(t, validFields(), true)
		req := httptest.NewRequest(http.MethodPost, "/api/sales", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"ok":true,"id":42}`, rec.Body.String())

		// La foto quedó guardada antes del insert
		require.NotNil(t, inserted)
		assert.Equal(t, int64(25000), inserted.Total)
		assert.Equal(t, domain.ChannelWeb, inserted.Phone)
		_, err := os.Stat(inserted.ReceiptPath)
		assert.NoError(t, err)
	})

	t.Run("sin boleta responde 400", func(t *testing.T) {
		env := newTestEnv(t)

		body, contentType := multipartSale(t, validFields(), false)
		req := httptest.NewRequest(http.MethodPost, "/api/sales", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"La boleta (imagen) es obligatoria"}`, rec.Body.String())
	})

	t.Run("punto de venta inválido responde 400", func(t *testing.T) {
		env := newTestEnv(t)

		fields := validFields()
		fields["punto_venta"] = "Carro Pirata"
		body, contentType := multipartSale(t, fields, true)
		req := httptest.NewRequest(http.MethodPost, "/api/sales", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Punto de venta inválido"}`, rec.Body.String())
	})

	t.Run("campo numérico ausente responde 400", func(t *testing.T) {
		env := newTestEnv(t)

		fields := validFields()
		delete(fields, "cash")
		body, contentType := multipartSale(t, fields, true)
		req := httptest.NewRequest(http.MethodPost, "/api/sales", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Todos los campos numéricos son obligatorios"}`, rec.Body.String())
	})
}

func TestListSalesHandler(t *testing.T) {
	t.Run("mes válido responde el listado", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().
			FetchBetween(gomock.Any(), "2024-02-01", "2024-02-29").
			Return([]*domain.Sale{
				{ID: 1, Date: "2024-02-10", Total: 1000, PuntoVenta: "Modulo", Folio: "F-1"},
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/sales?month=2024-02", nil)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"punto_venta":"Modulo"`)
		assert.Contains(t, rec.Body.String(), `"folio":"F-1"`)
	})

	t.Run("mes 13 responde 400", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodGet, "/api/sales?month=2024-13", nil)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Formato: YYYY-MM"}`, rec.Body.String())
	})
}

func TestUpdateSaleHandler(t *testing.T) {
	t.Run("cuerpo vacío responde 400", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPut, "/api/sales/5", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"No hay datos"}`, rec.Body.String())
	})

	t.Run("sólo campos desconocidos responde 400", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPut, "/api/sales/5", strings.NewReader(`{"propina": 100}`))
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"No hay campos para actualizar"}`, rec.Body.String())
	})

	t.Run("actualización válida responde ok", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().
			Update(gomock.Any(), int64(5), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, fields domain.SaleUpdate) (bool, error) {
				require.NotNil(t, fields.Total)
				assert.Equal(t, int64(1000), *fields.Total)
				return true, nil
			})

		req := httptest.NewRequest(http.MethodPut, "/api/sales/5", strings.NewReader(`{"total": "1,000"}`))
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("id inexistente responde 404", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().
			Update(gomock.Any(), int64(99), gomock.Any()).
			Return(false, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/sales/99", strings.NewReader(`{"folio":"F-2"}`))
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("id no numérico responde 400", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPut, "/api/sales/abc", strings.NewReader(`{"folio":"F-2"}`))
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteSaleHandler(t *testing.T) {
	t.Run("existente responde ok", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(true, nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/sales/3", nil)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("inexistente responde 404", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().Delete(gomock.Any(), int64(99)).Return(false, nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/sales/99", nil)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"No encontrado"}`, rec.Body.String())
	})
}

func TestGetMonthReportHandler(t *testing.T) {
	t.Run("genera la descarga y deja el archivo en disco", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().
			FetchBetween(gomock.Any(), "2024-02-01", "2024-02-29").
			Return([]*domain.Sale{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/report?month=2024-02", nil)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "ventas_2024-02.xlsx")
		assert.NotEmpty(t, rec.Body.Bytes())

		_, err := os.Stat(filepath.Join(env.reportsDir, "ventas_2024-02.xlsx"))
		assert.NoError(t, err)
	})

	t.Run("período inválido responde 400", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodGet, "/api/report?month=febrero", nil)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Formato: YYYY-MM"}`, rec.Body.String())
	})
}

func TestDownloadFileHandler(t *testing.T) {
	t.Run("reporte existente se descarga", func(t *testing.T) {
		env := newTestEnv(t)

		content := []byte("contenido de prueba")
		require.NoError(t, os.WriteFile(filepath.Join(env.reportsDir, "ventas_2024-01.xlsx"), content, 0o644))

		req := httptest.NewRequest(http.MethodGet, "/files/ventas_2024-01.xlsx", nil)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, content, rec.Body.Bytes())
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "ventas_2024-01.xlsx")
	})

	t.Run("reporte inexistente responde 404", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodGet, "/files/no_existe.xlsx", nil)
		rec := httptest.NewRecorder()

		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"No encontrado"}`, rec.Body.String())
	})
}

func TestHealthcheckHandler(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()

	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
