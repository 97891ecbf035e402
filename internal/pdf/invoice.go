package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"gomart/internal/models"
)

// InvoiceGenerator renders order invoices as PDF documents.
type InvoiceGenerator struct {
	CompanyName string
	fontName    string
}

func NewInvoiceGenerator(companyName string) *InvoiceGenerator {
	if companyName == "" {
		companyName = "GoMart"
	}
	return &InvoiceGenerator{
		CompanyName: companyName,
		fontName:    "Helvetica",
	}
}

// Generate renders the invoice for an order. The payment may be nil when no
// payment record exists yet.
func (g *InvoiceGenerator) Generate(order *models.Order, payment *models.Payment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice #%d", order.ID), false)
	pdf.SetAuthor(g.CompanyName, false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("No. INV-%06d  of  %s", order.ID, order.CreatedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Details")
	g.kvLine(pdf, "Seller", g.CompanyName)
	g.kvLine(pdf, "Customer", order.CustomerID)
	g.kvLine(pdf, "Delivery address", order.Address)
	g.kvLine(pdf, "Order status", string(order.Status))
	if payment != nil {
		g.kvLine(pdf, "Payment", fmt.Sprintf("%s (%s)", payment.Method, payment.Status))
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Items")
	g.itemsTable(pdf, order.Items)
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(130, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", order.Total), "T", 1, "R", false, 0, "")

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *InvoiceGenerator) itemsTable(pdf *gofpdf.Fpdf, items []*models.OrderItem) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(80, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	for _, item := range items {
		pdf.CellFormat(80, 7, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", item.UnitPrice), "", 0, "R", false, 0, "")
		amount := float64(item.Quantity) * item.UnitPrice
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", amount), "", 1, "R", false, 0, "")
	}
}

func (g *InvoiceGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *InvoiceGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *InvoiceGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
