package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/xuri/excelize/v2"

	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/repository"
	"github.com/ndewijer/Investment-Club-Backend/internal/valuation"
)

// ReportCurrency is the currency all ledger amounts are recorded in.
const ReportCurrency = money.INR

// Sheet names of the exported workbook.
const (
	SheetSummary       = "Summary"
	SheetPositions     = "Positions"
	SheetMembers       = "Members"
	SheetContributions = "Contributions"
)

// ReportService exports the club's valuation as a spreadsheet.
type ReportService struct {
	dashboard  *DashboardService
	memberRepo *repository.MemberRepository
}

// NewReportService creates a new ReportService.
func NewReportService(dashboard *DashboardService, memberRepo *repository.MemberRepository) *ReportService {
	return &ReportService{
		dashboard:  dashboard,
		memberRepo: memberRepo,
	}
}

// FormatAmount renders amount in ReportCurrency, e.g. "₹1,234.50".
func FormatAmount(amount float64) string {
	return money.NewFromFloat(amount, ReportCurrency).Display()
}

// BuildWorkbook computes a fresh valuation and writes it to a new workbook with
// Summary, Positions, Members and Contributions sheets.
func (s *ReportService) BuildWorkbook(ctx context.Context) (*excelize.File, error) {
	group, contributions, err := s.dashboard.ComputeGroup(ctx)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.GetMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveMembers, err)
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.FullName
	}

	f := excelize.NewFile()
	w := sheetWriter{f: f}

	w.summary(group, time.Now().UTC())
	w.positions(group.Positions)
	w.members(valuation.ApportionAll(contributions, group), names)
	w.contributions(contributions, names)

	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToBuildReport, w.err)
	}

	// NewFile creates Sheet1; the summary sheet replaces it.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToBuildReport, err)
	}
	if idx, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	return f, nil
}

// sheetWriter writes rows and keeps the first error.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) sheet(name string, header []any) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = err
		return
	}
	w.row(name, 1, header)
}

func (w *sheetWriter) row(sheet string, n int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) summary(group model.GroupValuation, at time.Time) {
	w.sheet(SheetSummary, []any{"Metric", "Value", "Display"})
	rows := []struct {
		label string
		value float64
	}{
		{"Total capital", group.TotalCapital},
		{"Cash balance", group.CashBalance},
		{"Invested amount", group.InvestedAmount},
		{"Current holdings value", group.CurrentHoldingsValue},
		{"Total current value", group.TotalCurrentValue},
		{"Total profit", group.TotalProfit},
	}
	for i, r := range rows {
		w.row(SheetSummary, i+2, []any{r.label, round(r.value), FormatAmount(r.value)})
	}
	w.row(SheetSummary, len(rows)+3, []any{"Computed at", at.Format(time.RFC3339)})
}

func (w *sheetWriter) positions(positions []model.PositionValuation) {
	w.sheet(SheetPositions, []any{
		"Symbol", "Name", "Quantity", "Avg price", "Cost basis", "Current price",
		"Quoted", "Current value", "Unrealized", "Realized", "Total profit",
	})
	for i, p := range positions {
		w.row(SheetPositions, i+2, []any{
			p.Label(), p.Name, p.Quantity, round(p.AvgPrice), round(p.CostBasis), round(p.CurrentPrice),
			p.HasQuote, round(p.CurrentValue), round(p.UnrealizedProfit), round(p.RealizedProfit), round(p.TotalProfit),
		})
	}
}

func (w *sheetWriter) members(shares []model.MemberShare, names map[string]string) {
	w.sheet(SheetMembers, []any{"Member", "Contributed", "Share", "Current value", "Profit"})
	for i, s := range shares {
		w.row(SheetMembers, i+2, []any{
			displayName(names, s.MemberID), round(s.ContributedCapital), s.ShareFraction, round(s.CurrentValue), round(s.Profit),
		})
	}
}

func (w *sheetWriter) contributions(contributions []model.Contribution, names map[string]string) {
	w.sheet(SheetContributions, []any{"Date", "Member", "Kind", "Amount", "Display"})
	for i, c := range contributions {
		w.row(SheetContributions, i+2, []any{
			c.Date.Format("2006-01-02"), displayName(names, c.MemberID), string(c.Kind), c.Amount, FormatAmount(c.Amount),
		})
	}
}

func displayName(names map[string]string, id string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return id
}
