package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/SscSPs/finance_tracker_app/internal/utils/accounting"
	"github.com/phpdave11/gofpdf"
)

// StatementMaxRows caps the number of transactions rendered into one statement.
const StatementMaxRows = 1000

var statementColumns = []struct {
	title string
	width float64
	align string
}{
	{"DATE", 24, "C"},
	{"TITLE", 70, "L"},
	{"CATEGORY", 34, "L"},
	{"TYPE", 22, "C"},
	{"AMOUNT", 32, "R"},
}

type statementService struct {
	BaseService
	txnRepo           portsrepo.TransactionReader
	reportingLocation *time.Location
	now               func() time.Time
}

// NewStatementService creates a statement renderer over the transaction store.
func NewStatementService(txnRepo portsrepo.TransactionReader, loc *time.Location) portssvc.StatementSvc {
	if loc == nil {
		loc = time.UTC
	}
	return &statementService{txnRepo: txnRepo, reportingLocation: loc, now: time.Now}
}

var _ portssvc.StatementSvc = (*statementService)(nil)

func (s *statementService) BuildStatement(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]byte, error) {
	filter, err := buildTransactionFilter(params, s.reportingLocation)
	if err != nil {
		return nil, err
	}

	txns, total, err := s.txnRepo.ListTransactions(ctx, userID, filter, StatementMaxRows, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for statement")
		return nil, fmt.Errorf("failed to load statement transactions: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(false, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Transaction Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Period: "+describePeriod(filter, s.reportingLocation))
	pdf.Ln(10)

	totals := accounting.Summarize(txns)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(20, 20, 20)
	pdf.Cell(0, 6, summaryCaption(len(txns), total))
	pdf.Ln(7)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 10, "Credit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 10, "Debit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(62, 10, "Net", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(60, 10, utils.FormatAmount(totals.Credit), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 10, utils.FormatAmount(totals.Debit), "1", 0, "C", false, 0, "")
	pdf.CellFormat(62, 10, utils.FormatAmount(totals.Net()), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeStatementHeader(pdf)
	pdf.SetFont("Helvetica", "", 9)
	for _, txn := range txns {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeStatementHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}
		cells := []string{
			txn.TransactionDate.In(s.reportingLocation).Format(dateOnlyLayout),
			tr(truncate(txn.Title, 40)),
			tr(truncate(txn.Category, 20)),
			string(txn.TransactionType),
			utils.FormatAmount(accounting.CalculateSignedAmount(txn)),
		}
		for i, col := range statementColumns {
			ln := 0
			if i == len(statementColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, 7, cells[i], "1", ln, col.align, false, 0, "")
		}
	}

	if total > int64(len(txns)) {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 8, fmt.Sprintf("Showing %d of %d transactions", len(txns), total), "1", 1, "C", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+s.now().In(s.reportingLocation).Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.LogError(ctx, err, "Failed to render statement PDF")
		return nil, fmt.Errorf("failed to render statement: %w", err)
	}

	s.LogInfo(ctx, "Statement generated", slog.Int("rows", len(txns)), slog.Int64("total", total))
	return buf.Bytes(), nil
}

// summaryCaption labels the totals box. When the row cap cut the list short the totals only cover the rows shown.
func summaryCaption(shown int, total int64) string {
	if total > int64(shown) {
		return fmt.Sprintf("Totals for the first %d of %d transactions", shown, total)
	}
	return "Totals for the period"
}

func writeStatementHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	for i, col := range statementColumns {
		ln := 0
		if i == len(statementColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, 8, col.title, "1", ln, "C", true, 0, "")
	}
}

func describePeriod(filter domain.TransactionFilter, loc *time.Location) string {
	from, to := "beginning", "today"
	if filter.From != nil {
		from = filter.From.In(loc).Format(dateOnlyLayout)
	}
	if filter.To != nil {
		to = filter.To.In(loc).Format(dateOnlyLayout)
	}
	return from + " to " + to
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
