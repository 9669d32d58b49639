package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/fitgear/ymmgo/internal/models"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// SheetConfig holds the inputs for one printable fitment sheet
type SheetConfig struct {
	ProductID    string
	ProductTitle string
	Scope        string
	StoreURL     string // storefront product page, encoded as QR
	Ranges       []models.VehicleRange
}

// GenerateFitmentSheetPDF renders a one-page compatibility chart for a
// product: sorted make/model/year rows plus a QR code linking back to the
// storefront page.
func GenerateFitmentSheetPDF(cfg SheetConfig) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	title := cfg.ProductTitle
	if title == "" {
		title = fmt.Sprintf("Product %s", cfg.ProductID)
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Vehicle Compatibility Chart", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// QR code in the top-right corner, linking to the product page
	if cfg.StoreURL != "" {
		qrPng, err := qrcode.Encode(cfg.StoreURL, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to encode QR: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("store_qr", opts, bytes.NewReader(qrPng))
		pdf.ImageOptions("store_qr", 165, 12, 30, 30, false, opts, 0, "")
	}

	rows := make([]models.VehicleRange, len(cfg.Ranges))
	copy(rows, cfg.Ranges)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Make != rows[j].Make {
			return rows[i].Make < rows[j].Make
		}
		if rows[i].Model != rows[j].Model {
			return rows[i].Model < rows[j].Model
		}
		return rows[i].YearStart < rows[j].YearStart
	})

	// Table header
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(235, 238, 245)
	pdf.CellFormat(60, 8, "Make", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, "Model", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Years", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, r := range rows {
		years := fmt.Sprintf("%d", r.YearStart)
		if r.YearEnd != r.YearStart {
			years = fmt.Sprintf("%d - %d", r.YearStart, r.YearEnd)
		}
		pdf.CellFormat(60, 7, r.Make, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, r.Model, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, years, "1", 1, "C", false, 0, "")
	}

	if len(rows) == 0 {
		pdf.CellFormat(180, 7, "No vehicles linked to this product yet", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
