package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/EstebanGomezT/casa-del-churro/infrastructure/filestore"
	"github.com/EstebanGomezT/casa-del-churro/internal/api/handler/router"
	"github.com/EstebanGomezT/casa-del-churro/internal/usecases/reporting"
	"github.com/EstebanGomezT/casa-del-churro/internal/usecases/selling"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Web sirve la página del formulario de registro
func Web(staticDir string) []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: WebIndex(staticDir),
		},
	}
}

// Files sirve los reportes ya generados para descarga
func Files(store *filestore.FileStore) []router.Route {
	return []router.Route{
		{
			Path:    "/files/:filename",
			Method:  http.MethodGet,
			Handler: DownloadFile(store),
		},
	}
}

func Sales(service selling.SaleService, store *filestore.FileStore) []router.Route {
	return []router.Route{
		{
			Path:    "/api/sales",
			Method:  http.MethodPost,
			Handler: CreateSale(service, store),
		},
		{
			Path:    "/api/sales",
			Method:  http.MethodGet,
			Handler: ListSales(service),
		},
		{
			Path:    "/api/sales/:id",
			Method:  http.MethodPut,
			Handler: UpdateSale(service),
		},
		{
			Path:    "/api/sales/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSale(service),
		},
	}
}

func Reports(service reporting.ReportService) []router.Route {
	return []router.Route{
		{
			Path:    "/api/report",
			Method:  http.MethodGet,
			Handler: GetMonthReport(service),
		},
	}
}
