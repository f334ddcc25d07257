package handler

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/EstebanGomezT/casa-del-churro/infrastructure/filestore"
	"github.com/EstebanGomezT/casa-del-churro/pkg/apiErrors"
)

// DownloadFile sirve un reporte generado previamente. 404 si no existe
// o si el nombre intenta salir del directorio de reportes.
func DownloadFile(store *filestore.FileStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filename := httprouter.ParamsFromContext(r.Context()).ByName("filename")

		path, err := store.ReportPath(filename)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrFileNotFound, "No encontrado")
			return
		}

		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		http.ServeFile(w, r, path)
	})
}
