package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	reportSheet = "Transactions"
	// XLSXContentType is the media type of exported reports
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var reportHeadings = []string{
	"Policy Number", "Holder", "Phone", "Agent", "Insurance Provider", "Vehicle Class",
	"Start Date", "End Date", "Status",
	"Premium", "Agent Rate %", "Our Rate %", "TDS Rate %", "GST Rate %", "Total Commission %",
	"Commission", "Agent Commission", "TDS", "Profit After TDS", "Our Profit", "GST", "Gross",
}

// Column ranges (1-based) of the numeric part of a row
const (
	premiumColumn     = 10
	firstRateColumn   = 11
	lastRateColumn    = 15
	firstAmountColumn = 16
)

// reportStyles holds the cell styles of a workbook. Rates keep up to four
// decimals; money is shown with two.
type reportStyles struct {
	bold, money, rate, boldMoney, boldRate int
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	moneyFmt, rateFmt := 2, "0.00##" // builtin 2 is 0.00
	styles := []*excelize.Style{
		{Font: &excelize.Font{Bold: true}},
		{NumFmt: moneyFmt},
		{CustomNumFmt: &rateFmt},
		{Font: &excelize.Font{Bold: true}, NumFmt: moneyFmt},
		{Font: &excelize.Font{Bold: true}, CustomNumFmt: &rateFmt},
	}
	ids := make([]int, len(styles))
	for i, style := range styles {
		id, err := f.NewStyle(style)
		if err != nil {
			return reportStyles{}, err
		}
		ids[i] = id
	}
	return reportStyles{bold: ids[0], money: ids[1], rate: ids[2], boldMoney: ids[3], boldRate: ids[4]}, nil
}

// styleNumbers applies money and rate formats to rows [fromRow, toRow]
func styleNumbers(f *excelize.File, fromRow, toRow, moneyStyle, rateStyle int) error {
	if fromRow > toRow {
		return nil
	}
	for _, span := range []struct{ from, to, style int }{
		{premiumColumn, premiumColumn, moneyStyle},
		{firstRateColumn, lastRateColumn, rateStyle},
		{firstAmountColumn, len(reportHeadings), moneyStyle},
	} {
		first, _ := excelize.CoordinatesToCellName(span.from, fromRow)
		last, _ := excelize.CoordinatesToCellName(span.to, toRow)
		if err := f.SetCellStyle(reportSheet, first, last, span.style); err != nil {
			return err
		}
	}
	return nil
}

// ExportReport renders a transaction report as an xlsx workbook: one row per
// policy and a bold totals row. Amounts are rounded to 2 places here and
// nowhere earlier; rates are written as stored.
func ExportReport(report *domain.TransactionReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}

	styles, err := newReportStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeRow(f, 1, toCells(reportHeadings)); err != nil {
		return nil, err
	}
	if err := setRowStyle(f, 1, len(reportHeadings), styles.bold); err != nil {
		return nil, err
	}

	row := 2
	for _, p := range report.Policies {
		if err := writeRow(f, row, policyCells(p)); err != nil {
			return nil, err
		}
		row++
	}
	if err := styleNumbers(f, 2, row-1, styles.money, styles.rate); err != nil {
		return nil, err
	}

	totals := report.Totals
	totalRow := make([]interface{}, len(reportHeadings))
	totalRow[0] = "Total"
	totalRow[9] = money(totals.PremiumAmount)
	totalRow[14] = rate(totals.TotalCommission)
	totalRow[15] = money(totals.Commission)
	totalRow[16] = money(totals.AgentCommission)
	totalRow[17] = money(totals.TDSAmount)
	totalRow[18] = money(totals.ProfitAfterTDS)
	totalRow[19] = money(totals.OurProfit)
	totalRow[20] = money(totals.GSTAmount)
	totalRow[21] = money(totals.GrossAmount)
	if err := writeRow(f, row, totalRow); err != nil {
		return nil, err
	}
	if err := setRowStyle(f, row, len(reportHeadings), styles.bold); err != nil {
		return nil, err
	}
	if err := styleNumbers(f, row, row, styles.boldMoney, styles.boldRate); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportFileName names the downloaded workbook, e.g. agent-ravi-kumar-2024-01-01-2024-03-31.xlsx
func ReportFileName(report *domain.TransactionReport) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(strings.TrimSpace(report.SubjectName)))
	return fmt.Sprintf("%s-%s-%s-%s.xlsx", report.Kind, slug, reportTimestamp(report.StartDate), reportTimestamp(report.EndDate))
}

func policyCells(p *domain.Policy) []interface{} {
	return []interface{}{
		p.PolicyNumber,
		p.Name,
		p.PhoneNumber,
		agentName(p),
		providerName(p),
		vehicleClassName(p),
		p.StartDate.Format("2006-01-02"),
		p.EndDate.Format("2006-01-02"),
		string(p.Status),
		money(p.PremiumAmount),
		rate(p.AgentRate),
		rate(p.OurRate),
		rate(p.TDSRate),
		rate(p.GSTRate),
		rate(p.TotalCommission),
		money(p.Commission),
		money(p.AgentCommission),
		money(p.TDSAmount),
		money(p.ProfitAfterTDS),
		money(p.OurProfit),
		money(p.GSTAmount),
		money(p.GrossAmount),
	}
}

func agentName(p *domain.Policy) string {
	if a, ok := p.Agent.Entity(); ok {
		return a.Name
	}
	return ""
}

func providerName(p *domain.Policy) string {
	if pr, ok := p.InsuranceProvider.Entity(); ok {
		return pr.Name
	}
	return ""
}

func vehicleClassName(p *domain.Policy) string {
	if vc, ok := p.VehicleType.Entity(); ok {
		return vc.Name
	}
	return ""
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func rate(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(reportSheet, cell, &values)
}

func setRowStyle(f *excelize.File, row, cols, style int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	return f.SetCellStyle(reportSheet, first, last, style)
}
