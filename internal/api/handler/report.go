package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/EstebanGomezT/casa-del-churro/internal/usecases/reporting"
	"github.com/EstebanGomezT/casa-del-churro/pkg/apiErrors"
	"github.com/EstebanGomezT/casa-del-churro/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetMonthReport genera el reporte del mes pedido y lo entrega como
// descarga. El archivo también queda en el directorio de reportes.
func GetMonthReport(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		month := r.URL.Query().Get("month")

		report, err := service.MonthReport(r.Context(), month, time.Now())
		if err != nil {
			logger.WithError(err).WithField("month", month).Warn("report: error al generar el reporte")
			apiErrors.Write(w, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(report.Data)))

		if _, err := w.Write(report.Data); err != nil {
			logger.WithError(err).Error("report: error al escribir la respuesta")
		}
	})
}
