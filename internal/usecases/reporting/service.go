package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/EstebanGomezT/casa-del-churro/infrastructure/filestore"
	"github.com/EstebanGomezT/casa-del-churro/infrastructure/repository"
	"github.com/EstebanGomezT/casa-del-churro/pkg/apiErrors"
	"github.com/EstebanGomezT/casa-del-churro/pkg/log"
	"github.com/EstebanGomezT/casa-del-churro/pkg/utils"
)

// ReportService genera el reporte mensual de ventas en XLSX, con una
// fila por venta, la foto de cada boleta incrustada y una fila de
// totales al final.
type ReportService interface {
	MonthReport(ctx context.Context, month string, now time.Time) (*Report, error)
}

// Report es el archivo generado, listo para descargar. Además queda
// escrito en el directorio de reportes para servirlo por /files.
type Report struct {
	Filename string
	Data     []byte
}

type Service struct {
	saleRepo repository.SaleRepository
	store    *filestore.FileStore
}

func NewService(saleRepo repository.SaleRepository, store *filestore.FileStore) ReportService {
	return &Service{
		saleRepo: saleRepo,
		store:    store,
	}
}

func (s *Service) MonthReport(ctx context.Context, month string, now time.Time) (*Report, error) {
	from, to, err := utils.MonthRange(month, now)
	if err != nil {
		return nil, apiErrors.New(apiErrors.ErrInvalidFormat, "Formato: YYYY-MM")
	}

	sales, err := s.saleRepo.FetchBetween(ctx, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	data, err := buildWorkbook(sales)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("ventas_%s.xlsx", month)
	if _, err := s.store.SaveReport(filename, data); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"month":    month,
		"sales":    len(sales),
		"filename": filename,
	}).Info("reporte mensual generado")

	return &Report{Filename: filename, Data: data}, nil
}
