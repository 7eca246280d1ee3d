// Package receipt renders the purchase note ("nota de compra") PDF that is
// attached to the order confirmation email. The whole document is buffered
// in memory; nothing is written to disk.
package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/model"
)

// maxNameLen is the character budget for product names in the item table;
// longer names are cut so the row layout cannot break.
const maxNameLen = 35

// Data carries everything the receipt shows.
type Data struct {
	OrderID    uint64
	Reference  string
	Fecha      time.Time
	MetodoPago string
	Shipping   model.ShippingInfo
	Items      []model.OrderItem
	Total      decimal.Decimal
}

// Generate renders the receipt and returns the PDF bytes. Layout errors
// surface as a normal error so checkout can report a failed receipt
// instead of silently dropping the email.
func Generate(d Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; tr maps UTF-8 input (accented names,
	// addresses) onto it.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Nota de Compra #%d", d.OrderID), false)
	pdf.AddPage()

	// Company block
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(68, 68, 68)
	pdf.Cell(100, 10, "Tech-Up")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Tech-Up S.A. de C.V.", "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, "Aguascalientes, Ags.", "", 1, "R", false, 0, "")
	pdf.Ln(6)
	divider(pdf)

	// Order metadata and buyer block, side by side
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Nota de Compra", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	top := pdf.GetY()
	pdf.CellFormat(95, 5, fmt.Sprintf("Orden #: %d", d.OrderID), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 5, fmt.Sprintf("Referencia: %s", d.Reference), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 5, fmt.Sprintf("Fecha: %s", d.Fecha.UTC().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 5, tr(fmt.Sprintf("Método de Pago: %s", strings.ToUpper(d.MetodoPago))), "", 1, "L", false, 0, "")

	pdf.SetXY(105, top)
	pdf.CellFormat(95, 5, tr(fmt.Sprintf("Cliente: %s", d.Shipping.Nombre)), "", 2, "L", false, 0, "")
	pdf.CellFormat(95, 5, fmt.Sprintf("Email: %s", d.Shipping.Email), "", 2, "L", false, 0, "")
	pdf.MultiCell(95, 5, tr(fmt.Sprintf("Dirección: %s", d.Shipping.Direccion)), "", "L", false)
	pdf.Ln(6)
	divider(pdf)

	// Item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Cant.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Precio Unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range d.Items {
		pdf.CellFormat(90, 6, tr(truncate(it.Nombre)), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", it.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "$"+it.Precio.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, "$"+it.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	divider(pdf)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "TOTAL PAGADO: $"+d.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("receipt layout: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt output: %w", err)
	}
	return buf.Bytes(), nil
}

func divider(pdf *fpdf.Fpdf) {
	x, y := pdf.GetXY()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(10, y, 200, y)
	pdf.SetXY(x, y+3)
}

func truncate(name string) string {
	r := []rune(name)
	if len(r) <= maxNameLen {
		return name
	}
	return string(r[:maxNameLen])
}
