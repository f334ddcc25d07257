package reporting

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	// Formatos de imagen aceptados para las fotos de boletas
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp"

	"github.com/EstebanGomezT/casa-del-churro/internal/domain"
)

const (
	sheetName = "Ventas"

	// Caja máxima de la imagen dentro de la celda, en píxeles. La
	// escala conserva la proporción original.
	imgMaxWidthPx  = 150.0
	imgMaxHeightPx = 200.0

	// Alto de fila para que la imagen quede completa
	imgRowHeightPt = 155.0

	colWidth        = 16.0
	receiptColWidth = 24.0

	missingImageText = "(imagen no disponible)"
)

var headers = []interface{}{
	"Fecha", "Punto Venta", "Total", "Débito", "Crédito", "Efectivo",
	"Bol. Débito", "Bol. Crédito", "Bol. Efectivo", "Folio", "Boleta",
}

// Extensiones que excelize puede incrustar directamente. El resto de
// los formatos decodificables (webp) se reencodea a PNG.
var embeddableExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
}

// buildWorkbook arma el XLSX del mes: encabezado, una fila por venta en
// el orden recibido, una fila en blanco y la fila TOTAL con las sumas.
// Para las mismas ventas y los mismos archivos en disco el resultado
// tiene siempre las mismas celdas.
func buildWorkbook(sales []*domain.Sale) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, errors.Wrap(err, "error al nombrar la hoja")
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, errors.Wrap(err, "error al escribir el encabezado")
	}

	var totalSum, debitSum, creditSum, cashSum int64
	var bdSum, bcSum, bcaSum int64

	for idx, sale := range sales {
		row := idx + 2

		cells := []interface{}{
			sale.Date, sale.PuntoVenta,
			sale.Total, sale.Debit, sale.Credit, sale.Cash,
			sale.BoletasDebit, sale.BoletasCredit, sale.BoletasCash,
			sale.Folio, "",
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &cells); err != nil {
			return nil, errors.Wrapf(err, "error al escribir la fila %d", row)
		}

		totalSum += sale.Total
		debitSum += sale.Debit
		creditSum += sale.Credit
		cashSum += sale.Cash
		bdSum += sale.BoletasDebit
		bcSum += sale.BoletasCredit
		bcaSum += sale.BoletasCash

		if err := embedReceipt(f, row, sale.ReceiptPath); err != nil {
			return nil, err
		}
	}

	// Fila en blanco y fila de totales
	totalsRow := len(sales) + 3
	totals := []interface{}{
		"TOTAL", "",
		totalSum, debitSum, creditSum, cashSum,
		bdSum, bcSum, bcaSum, "", "",
	}
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", totalsRow), &totals); err != nil {
		return nil, errors.Wrap(err, "error al escribir la fila de totales")
	}

	if err := f.SetColWidth(sheetName, "A", "K", colWidth); err != nil {
		return nil, errors.Wrap(err, "error al fijar el ancho de columnas")
	}
	if err := f.SetColWidth(sheetName, "K", "K", receiptColWidth); err != nil {
		return nil, errors.Wrap(err, "error al fijar el ancho de la columna de boletas")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "error al serializar el workbook")
	}

	return buf.Bytes(), nil
}

// embedReceipt incrusta la foto de la boleta en la columna K de la
// fila, escalada a la caja máxima conservando la proporción. Si el
// archivo falta o no se puede decodificar, la celda queda con el texto
// de imagen no disponible y el reporte sigue.
func embedReceipt(f *excelize.File, row int, receiptPath string) error {
	pic, err := loadReceiptPicture(receiptPath)
	if err != nil {
		cell := fmt.Sprintf("K%d", row)
		if err := f.SetCellValue(sheetName, cell, missingImageText); err != nil {
			return errors.Wrapf(err, "error al escribir la celda %s", cell)
		}
		return nil
	}

	cell := fmt.Sprintf("K%d", row)
	if err := f.AddPictureFromBytes(sheetName, cell, pic); err != nil {
		return errors.Wrapf(err, "error al incrustar la imagen en %s", cell)
	}

	if err := f.SetRowHeight(sheetName, row, imgRowHeightPt); err != nil {
		return errors.Wrapf(err, "error al fijar el alto de la fila %d", row)
	}

	return nil
}

// loadReceiptPicture lee la imagen desde disco y calcula la escala
// min(maxW/W, maxH/H) a partir de sus dimensiones originales.
func loadReceiptPicture(receiptPath string) (*excelize.Picture, error) {
	if receiptPath == "" {
		return nil, errors.New("venta sin ruta de boleta")
	}

	data, err := os.ReadFile(receiptPath)
	if err != nil {
		return nil, errors.Wrap(err, "error al leer la boleta")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "boleta no decodificable")
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, errors.New("boleta con dimensiones inválidas")
	}

	ext := strings.ToLower(filepath.Ext(receiptPath))
	if !embeddableExts[ext] {
		data, err = reencodePNG(data)
		if err != nil {
			return nil, err
		}
		ext = ".png"
	}

	scale := imgMaxWidthPx / float64(cfg.Width)
	if h := imgMaxHeightPx / float64(cfg.Height); h < scale {
		scale = h
	}

	return &excelize.Picture{
		Extension: ext,
		File:      data,
		Format: &excelize.GraphicOptions{
			ScaleX: scale,
			ScaleY: scale,
		},
	}, nil
}

// reencodePNG convierte formatos decodificables pero no incrustables
// (webp) a PNG. Las dimensiones no cambian, así que la escala calculada
// sobre el original sigue valiendo.
func reencodePNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "error al decodificar la boleta")
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, errors.Wrap(err, "error al reencodear la boleta")
	}

	return out.Bytes(), nil
}
