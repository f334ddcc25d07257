package filestore

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/EstebanGomezT/casa-del-churro/internal/config"
	"github.com/EstebanGomezT/casa-del-churro/pkg/utils"
)

// FileStore administra los archivos en disco: fotos de boletas subidas
// por el formulario y reportes mensuales generados.
type FileStore struct {
	receiptsDir string
	reportsDir  string
}

func New(cfg config.Storage) (*FileStore, error) {
	if err := os.MkdirAll(cfg.ReceiptsDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "error al crear el directorio de boletas")
	}
	if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "error al crear el directorio de reportes")
	}

	return &FileStore{
		receiptsDir: cfg.ReceiptsDir,
		reportsDir:  cfg.ReportsDir,
	}, nil
}

// SaveReceipt guarda la imagen de una boleta subida y devuelve la ruta
// relativa que queda registrada en la venta. El nombre lleva timestamp
// más un sufijo aleatorio para que dos subidas simultáneas no choquen.
func (s *FileStore) SaveReceipt(file multipart.File, originalName string, when time.Time) (string, error) {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".jpg"
	}

	suffix, err := utils.GenerateID()
	if err != nil {
		return "", errors.Wrap(err, "error al generar el sufijo del archivo")
	}

	filename := fmt.Sprintf("web_%s_%s%s", when.Format("20060102_150405"), suffix, ext)
	path := filepath.Join(s.receiptsDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "error al crear el archivo de la boleta")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", errors.Wrap(err, "error al escribir la boleta")
	}

	return path, nil
}

// SaveReport escribe un reporte generado en el directorio de reportes
// para que quede disponible en /files/{filename}.
func (s *FileStore) SaveReport(filename string, data []byte) (string, error) {
	path := filepath.Join(s.reportsDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "error al escribir el reporte")
	}
	return path, nil
}

// ReportPath resuelve el nombre de un reporte generado a su ruta en
// disco. Rechaza nombres con separadores para no salir del directorio.
func (s *FileStore) ReportPath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", errors.Errorf("nombre de archivo inválido: %q", filename)
	}

	path := filepath.Join(s.reportsDir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", errors.Errorf("archivo no encontrado: %q", filename)
	}

	return path, nil
}
