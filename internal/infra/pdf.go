package infra

// pdf.go — thermal-receipt-style ticket generation using go-pdf/fpdf.
// Two ticket kinds exist: the sale ticket handed to the buyer and the repair
// order intake ticket the customer keeps while the device is in the shop.
// Output files land in storagePath/<name>.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/NicolasGomez268/PuntoTecno/internal/model"
)

var decimalZero = decimal.Zero

// ticket paper ≈ 74mm × 105mm (close to common thermal rolls)
func newTicketPDF() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()
	return pdf
}

func ticketHeader(pdf *fpdf.Fpdf, business, subtitle string, contentW float64) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, business, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

// GenerateSaleTicketPDF renders the receipt for a completed sale and returns
// the absolute path of the written file.
func GenerateSaleTicketPDF(sale *model.Sale, business, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("ticket_%s.pdf", sale.SaleNumber))

	pdf := newTicketPDF()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	ticketHeader(pdf, business, "Ticket de Venta", contentW)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, sale.SaleNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.Date.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Cliente: "+sale.CustomerDisplay(), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	if !sale.Discount.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Descuento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-$"+sale.Discount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+sale.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Pago ("+sale.PaymentMethod+"):", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, "$"+sale.PaidAmount.StringFixed(2), "", 1, "R", false, 0, "")
	if sale.Balance.GreaterThan(decimalZero) {
		pdf.CellFormat(col1+col2, 4, "Saldo pendiente:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+sale.Balance.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateOrderTicketPDF renders the intake ticket for a repair order.
func GenerateOrderTicketPDF(order *model.RepairOrder, business, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("orden_%s.pdf", order.OrderNumber))

	pdf := newTicketPDF()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	ticketHeader(pdf, business, "Orden de Reparacion", contentW)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, order.OrderNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, order.ReceivedDate.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if order.Customer != nil {
		pdf.CellFormat(contentW, 4, "Cliente: "+order.Customer.FullName(), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 4, "Tel: "+order.Customer.Phone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW, 5, "Equipo", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, order.DeviceBrand+" "+order.DeviceModel, "", 1, "L", false, 0, "")
	if order.DeviceSerial != nil && *order.DeviceSerial != "" {
		pdf.CellFormat(contentW, 4, "Serie/IMEI: "+*order.DeviceSerial, "", 1, "L", false, 0, "")
	}
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW, 5, "Falla declarada", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.MultiCell(contentW, 4, order.ProblemDescription, "", "L", false)
	pdf.Ln(1)

	if order.EstimatedCost != nil {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW*0.6, 5, "Presupuesto:", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 5, "$"+order.EstimatedCost.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if order.DepositAmount.GreaterThan(decimalZero) {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(contentW*0.6, 4, "Seña:", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 4, "$"+order.DepositAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 6)
	pdf.MultiCell(contentW, 3, "Conserve este ticket para retirar su equipo.", "", "C", false)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
