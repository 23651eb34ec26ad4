package infra

// pdf.go: generación del PDF de pedido a distribuidor con go-pdf/fpdf.
// Hoja A4 con encabezado del distribuidor, tabla de líneas (producto,
// unidad, actual, par, faltante) y pie con fecha de emisión.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"barstock/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateOrdenPDF escribe el PDF del pedido en storagePath (se crea si no
// existe) y devuelve la ruta absoluta del archivo generado.
func GenerateOrdenPDF(orden *dto.OrdenResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}

	fileName := fmt.Sprintf("pedido_%s_%s.pdf",
		orden.DistribuidorID, time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Encabezado ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Pedido de reposicion", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Distribuidor: "+orden.Distribuidor, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Fecha: "+time.Now().Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Tabla ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.40 // producto
	col2 := contentW * 0.15 // unidad
	col3 := contentW * 0.15 // actual
	col4 := contentW * 0.15 // par
	col5 := contentW * 0.15 // faltante

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Unidad", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Actual", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Par", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "Pedir", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range orden.Items {
		pdf.CellFormat(col1, 6, item.Nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, item.Unidad, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, item.Actual.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, item.Objetivo.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, item.Faltante.String(), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%d productos por debajo del par", len(orden.Items)), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir %s: %w", filePath, err)
	}
	return filePath, nil
}
