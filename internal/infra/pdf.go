package infra

// pdf.go — day-close report generation using go-pdf/fpdf.
// One A4 page per business day: header, totals by payment method, and a row
// per till session with its opening/counted balances and variance.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// DayReportSession is one till session line in the report.
type DayReportSession struct {
	TerminalID     string
	OperatorName   string
	InitialBalance decimal.Decimal
	FinalBalance   decimal.Decimal
	Variance       decimal.Decimal
	VarianceClass  string
}

// DayReport is the payload rendered into the day-close PDF.
type DayReport struct {
	StoreID     string
	Date        string
	TotalOrders int64
	TotalSales  decimal.Decimal
	Cash        decimal.Decimal
	Card        decimal.Decimal
	Pix         decimal.Decimal
	Other       decimal.Decimal
	Withdrawals decimal.Decimal
	Deposits    decimal.Decimal
	Sessions    []DayReportSession
}

// GenerateDayReportPDF writes the closing report for one business day.
// storagePath is created if needed; returns the absolute path of the file.
func GenerateDayReportPDF(r *DayReport, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("day_report_%s_%s.pdf", r.StoreID, r.Date)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Day Close Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Store %s — %s", r.StoreID, r.Date), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Totals", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Orders", fmt.Sprintf("%d", r.TotalOrders)},
		{"Total sales", r.TotalSales.StringFixed(2)},
		{"Cash", r.Cash.StringFixed(2)},
		{"Card", r.Card.StringFixed(2)},
		{"Pix", r.Pix.StringFixed(2)},
		{"Other", r.Other.StringFixed(2)},
		{"Withdrawals", r.Withdrawals.StringFixed(2)},
		{"Deposits", r.Deposits.StringFixed(2)},
	}
	for _, row := range rows {
		pdf.CellFormat(contentW*0.5, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.5, 6, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Sessions ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Till sessions", "B", 1, "L", false, 0, "")

	col := contentW / 6
	pdf.SetFont("Helvetica", "B", 9)
	for _, h := range []string{"Terminal", "Operator", "Opening", "Counted", "Variance", "Class"} {
		pdf.CellFormat(col, 6, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, s := range r.Sessions {
		pdf.CellFormat(col, 6, s.TerminalID, "", 0, "L", false, 0, "")
		pdf.CellFormat(col, 6, s.OperatorName, "", 0, "L", false, 0, "")
		pdf.CellFormat(col, 6, s.InitialBalance.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col, 6, s.FinalBalance.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col, 6, s.Variance.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col, 6, s.VarianceClass, "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
