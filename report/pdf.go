package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"ltv-advisor/domain"
)

const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginRight  = 15.0
	marginBottom = 15.0
	contentWidth = 210.0 - marginLeft - marginRight
)

// pdfText swaps the UTF-8 pound sign for the Latin-1 byte the core fonts use.
func pdfText(s string) string {
	return strings.ReplaceAll(s, "£", "\xa3")
}

type pdfReport struct {
	pdf    *fpdf.Fpdf
	result domain.CalculationResult
}

// PDF renders a calculation as a printable A4 report.
func PDF(result domain.CalculationResult, generated time.Time) ([]byte, error) {
	r := &pdfReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		result: result,
	}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle("Should I overpay to a lower LTV?", false)

	r.pdf.AddPage()
	r.addTitle(generated)
	r.addLTVSummary()
	r.addSimpleResults()
	r.addFairerResults()
	r.addOptimisticResults()
	r.addBracketTable()
	r.addDisclaimer()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) addTitle(generated time.Time) {
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "Should I overpay to a lower LTV?", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", generated.Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *pdfReport) addLTVSummary() {
	ltv := r.result.LTV
	r.drawSectionHeader("Your mortgage")

	widths := []float64{110, contentWidth - 110}
	r.drawTableRow([]string{"Property value", Money(r.result.PropertyValue)}, widths, false)
	r.drawTableRow([]string{"Current LTV (as quoted by lenders)", fmt.Sprintf("%d%%", ltv.DisplayPct)}, widths, false)
	r.drawTableRow([]string{"Actual LTV", Percent(ltv.ExactPct)}, widths, false)
	r.drawTableRow([]string{"Target LTV bracket", Percent(ltv.NextBracketPct)}, widths, false)
	r.drawTableRow([]string{"Overpayment needed", Money(ltv.AmountToNextBracket)}, widths, true)
	r.pdf.Ln(6)
}

func (r *pdfReport) addSimpleResults() {
	s := r.result.Simple
	r.drawSectionHeader("Simple results")

	widths := []float64{70, (contentWidth - 70) / 2, (contentWidth - 70) / 2}
	r.drawTableHeader([]string{"", "Current LTV rate", "Target LTV rate"}, widths)
	r.drawTableRow([]string{"Interest rate", Percent(s.Current.LTVRatePct), Percent(s.Next.LTVRatePct)}, widths, false)
	r.drawTableRow([]string{"Mortgage", Money(s.Current.Principal), Money(s.Next.Principal)}, widths, false)
	r.drawTableRow([]string{"Monthly payment", Money(s.Current.MonthlyPayment), Money(s.Next.MonthlyPayment)}, widths, false)
	r.drawTableRow([]string{
		fmt.Sprintf("Balance after %d years", r.result.FixedTermYears),
		Money(s.Current.BalanceAfterFixedTerm), Money(s.Next.BalanceAfterFixedTerm),
	}, widths, false)
	r.drawTableRow([]string{"Savings banked", Money(0), Money(s.TotalSavings)}, widths, false)
	r.drawTableRow([]string{"Net worth", Money(s.NetWorthCurrent), Money(s.NetWorthNext)}, widths, true)
	r.pdf.Ln(3)

	r.drawParagraph(fmt.Sprintf("You are %s better off after %d years, equivalent to a guaranteed %s annualised return.",
		Money(s.NetWorthDiff), r.result.FixedTermYears, Percent(s.EquivalentAnnualReturnPct)))
}

func (r *pdfReport) addFairerResults() {
	f := r.result.Fairer
	r.drawSectionHeader("Fairer results")

	widths := []float64{110, contentWidth - 110}
	r.drawTableRow([]string{"Monthly saving reinvested at", Percent(f.ReinvestRatePct)}, widths, false)
	r.drawTableRow([]string{"Value of reinvested savings", Money(f.SavingsFutureValue)}, widths, false)
	r.drawTableRow([]string{"Increase over simple results", Money(f.IncreaseOverSimple)}, widths, false)
	r.drawTableRow([]string{"Net worth", Money(f.NetWorth)}, widths, true)
	r.drawTableRow([]string{"Better off by", Money(f.NetWorthDiff)}, widths, true)
	r.pdf.Ln(6)
}

func (r *pdfReport) addOptimisticResults() {
	r.drawSectionHeader("Optimistic results")

	widths := []float64{45, 45, 45, contentWidth - 135}
	r.drawTableHeader([]string{"Reinvestment rate", "Savings value", "Net worth", "vs fairer"}, widths)
	for _, s := range r.result.Optimistic.Scenarios {
		r.drawTableRow([]string{
			Percent(s.ReinvestRatePct), Money(s.SavingsFutureValue), Money(s.NetWorth), Money(s.DeltaVsFairer),
		}, widths, false)
	}
	r.pdf.Ln(6)
}

func (r *pdfReport) addBracketTable() {
	r.drawSectionHeader("Mortgage amount by LTV")

	table := make([]domain.BracketEntry, len(r.result.BracketTable))
	copy(table, r.result.BracketTable)
	sort.Slice(table, func(i, j int) bool {
		return table[i].LTVPct > table[j].LTVPct
	})

	widths := []float64{40, 60}
	r.drawTableHeader([]string{"LTV", "Mortgage amount"}, widths)
	for _, entry := range table {
		r.drawTableRow([]string{fmt.Sprintf("%d%%", entry.LTVPct), Money(entry.MortgageAmount)}, widths, false)
	}
	r.pdf.Ln(2)
	r.drawParagraph("Mortgage providers typically do not give better rates below 60% LTV.")
}

func (r *pdfReport) addDisclaimer() {
	r.pdf.Ln(6)
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4.5,
		"Benefits are shown over the fixed term only. This document is for informational purposes "+
			"and does not constitute financial advice.", "", "C", false)
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 9, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawParagraph(text string) {
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.MultiCell(contentWidth, 5, pdfText(text), "", "L", false)
	r.pdf.Ln(4)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, pdfText(cell), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
