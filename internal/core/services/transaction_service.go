package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/core/ports/storage"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	msgTransactionRequired = "Title, amount and category are required"
	msgTransactionNotFound = "Transaction not found"
	msgUploadFailed        = "Failed to upload attachments"

	defaultUploadConcurrency = 3
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo           portsrepo.TransactionRepositoryFacade
	objectStore       storage.ObjectStore
	fieldValidator    portssvc.CustomFieldValidatorSvc
	reportingLocation *time.Location
	uploadConcurrency int
	now               func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithCustomFieldValidator checks custom field values against the owner's schema.
func WithCustomFieldValidator(v portssvc.CustomFieldValidatorSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.fieldValidator = v
	}
}

// WithReportingLocation sets the timezone used to expand month/year and date-only filters.
func WithReportingLocation(loc *time.Location) TransactionServiceOption {
	return func(s *transactionService) {
		if loc != nil {
			s.reportingLocation = loc
		}
	}
}

// WithUploadConcurrency bounds the number of parallel object store uploads.
func WithUploadConcurrency(n int) TransactionServiceOption {
	return func(s *transactionService) {
		if n > 0 {
			s.uploadConcurrency = n
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, store storage.ObjectStore, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:           repo,
		objectStore:       store,
		reportingLocation: time.UTC,
		uploadConcurrency: defaultUploadConcurrency,
		now:               time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.TransactionRequest, files []domain.UploadFile) (*domain.Transaction, error) {
	title := trimmedOrEmpty(req.Title)
	category := trimmedOrEmpty(req.Category)
	if title == "" || category == "" || req.Amount == nil || strings.TrimSpace(req.Amount.String()) == "" {
		return nil, apperrors.NewValidationError(msgTransactionRequired)
	}

	amount, err := parseAmount(*req.Amount)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		Title:           title,
		Category:        category,
		TransactionType: domain.Debit,
		TransactionMode: domain.ModeUPI,
		Amount:          amount,
		TransactionDate: now,
		Counterparty:    trimmedOrEmpty(req.Counterparty),
		Remarks:         trimmedOrEmpty(req.Remarks),
		Active:          true,
		CustomFields:    req.CustomFields,
		AuditFields:     domain.NewAuditFields(userID, now),
	}
	if err := applyEnums(&txn, req); err != nil {
		return nil, err
	}
	if txn.CustomFields == nil {
		txn.CustomFields = map[string]any{}
	}
	if s.fieldValidator != nil {
		if err := s.fieldValidator.ValidateCustomFields(ctx, userID, txn.CustomFields, true); err != nil {
			return nil, err
		}
	}

	attachments, err := s.uploadAttachments(ctx, files)
	if err != nil {
		return nil, err
	}
	txn.Attachments = attachments

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		s.deleteAttachments(ctx, attachments, "Failed to clean up attachment after save failure")
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("attachments", len(attachments)))
	return &txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.findOwned(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Active {
		return nil, apperrors.NewNotFoundError(msgTransactionNotFound)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter, err := buildTransactionFilter(params, s.reportingLocation)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(params.Page, params.Limit)

	txns, total, err := s.txnRepo.ListTransactions(ctx, userID, filter, page.Limit, page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.Int("page", page.Number), slog.Int("limit", page.Limit))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Data: dto.ToTransactionResponseSlice(txns),
		Pagination: dto.PaginationResponse{
			Total:      total,
			Page:       page.Number,
			Limit:      page.Limit,
			TotalPages: pagination.TotalPages(total, page.Limit),
		},
	}, nil
}

// UpdateTransaction applies the provided fields and reconciles attachments.
// New files are uploaded before the write and dropped attachments are deleted after it,
// so a failed upload or write never loses an existing attachment.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.TransactionRequest, files []domain.UploadFile) (*domain.Transaction, error) {
	current, err := s.findOwned(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if err := applyUpdate(&updated, req); err != nil {
		return nil, err
	}
	if req.CustomFields != nil {
		if s.fieldValidator != nil {
			if err := s.fieldValidator.ValidateCustomFields(ctx, userID, req.CustomFields, false); err != nil {
				return nil, err
			}
		}
		updated.CustomFields = req.CustomFields
	}

	var keepIDs []string
	if req.AttachmentIDs != nil {
		keepIDs = *req.AttachmentIDs
	}
	keep, drop := domain.PartitionAttachments(current.Attachments, keepIDs)
	if req.AttachmentIDs == nil && len(drop) > 0 {
		s.LogWarn(ctx, "attachmentIds not provided, removing all existing attachments",
			slog.String("transaction_id", transactionID),
			slog.Int("removed", len(drop)))
	}

	uploaded, err := s.uploadAttachments(ctx, files)
	if err != nil {
		return nil, err
	}

	final := make([]domain.Attachment, 0, len(keep)+len(uploaded))
	final = append(final, keep...)
	final = append(final, uploaded...)
	updated.Attachments = final
	updated.Touch(userID, s.now().UTC())

	if err := s.txnRepo.UpdateTransaction(ctx, updated); err != nil {
		s.deleteAttachments(ctx, uploaded, "Failed to clean up attachment after update failure")
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgTransactionNotFound)
		}
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.deleteAttachments(ctx, drop, "Failed to delete dropped attachment")

	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.Int("kept", len(keep)),
		slog.Int("added", len(uploaded)),
		slog.Int("dropped", len(drop)))
	return &updated, nil
}

// DeleteTransaction removes the record first, then its attachments best-effort.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	txn, err := s.findOwned(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(msgTransactionNotFound)
		}
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.deleteAttachments(ctx, txn.Attachments, "Failed to delete attachment of deleted transaction")
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) ArchiveTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	return s.setActive(ctx, userID, transactionID, false)
}

func (s *transactionService) RestoreTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	return s.setActive(ctx, userID, transactionID, true)
}

func (s *transactionService) setActive(ctx context.Context, userID, transactionID string, active bool) (*domain.Transaction, error) {
	txn, err := s.findOwned(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	audit := txn.AuditFields
	audit.Touch(userID, s.now().UTC())
	if err := s.txnRepo.SetTransactionActive(ctx, userID, transactionID, active, audit); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgTransactionNotFound)
		}
		s.LogError(ctx, err, "Failed to change transaction active flag",
			slog.String("transaction_id", transactionID),
			slog.Bool("active", active))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	txn.Active = active
	txn.AuditFields = audit
	return txn, nil
}

func (s *transactionService) findOwned(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgTransactionNotFound)
		}
		s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return txn, nil
}

// uploadAttachments uploads files concurrently and returns attachments in input order.
// On the first failure every object uploaded by this call is deleted again.
func (s *transactionService) uploadAttachments(ctx context.Context, files []domain.UploadFile) ([]domain.Attachment, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if s.objectStore == nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, msgUploadFailed,
			fmt.Errorf("%w: no object store configured", apperrors.ErrUpload))
	}

	results := make([]*domain.Attachment, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.uploadConcurrency)
	for i, file := range files {
		g.Go(func() error {
			obj, err := s.objectStore.Upload(gctx, file)
			if err != nil {
				return fmt.Errorf("upload %q: %w", file.FileName, err)
			}
			results[i] = &domain.Attachment{
				URL:          obj.URL,
				PublicID:     obj.PublicID,
				OriginalName: file.FileName,
				MimeType:     file.ContentType,
				Size:         file.Size,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var uploaded []domain.Attachment
		for _, a := range results {
			if a != nil {
				uploaded = append(uploaded, *a)
			}
		}
		s.LogError(ctx, err, "Attachment upload failed", slog.Int("files", len(files)), slog.Int("uploaded", len(uploaded)))
		s.deleteAttachments(ctx, uploaded, "Failed to clean up attachment after upload failure")
		return nil, apperrors.NewAppError(http.StatusInternalServerError, msgUploadFailed,
			fmt.Errorf("%w: %w", apperrors.ErrUpload, err))
	}

	attachments := make([]domain.Attachment, len(results))
	for i, a := range results {
		attachments[i] = *a
	}
	return attachments, nil
}

// deleteAttachments issues exactly one delete per attachment and only logs failures.
func (s *transactionService) deleteAttachments(ctx context.Context, attachments []domain.Attachment, failureMsg string) {
	if len(attachments) == 0 || s.objectStore == nil {
		return
	}
	// cleanup must outlive a cancelled request
	cleanupCtx := context.WithoutCancel(ctx)
	for _, a := range attachments {
		if err := s.objectStore.Delete(cleanupCtx, a.PublicID); err != nil {
			s.LogError(ctx, err, failureMsg, slog.String("public_id", a.PublicID))
		}
	}
}

func applyEnums(txn *domain.Transaction, req dto.TransactionRequest) error {
	if v := trimmedOrEmpty(req.TransactionType); v != "" {
		t := domain.TransactionType(v)
		if !t.IsValid() {
			return apperrors.NewValidationError(fmt.Sprintf("Invalid transactionType: %s", v))
		}
		txn.TransactionType = t
	}
	if v := trimmedOrEmpty(req.TransactionMode); v != "" {
		m := domain.TransactionMode(v)
		if !m.IsValid() {
			return apperrors.NewValidationError(fmt.Sprintf("Invalid transactionMode: %s", v))
		}
		txn.TransactionMode = m
	}
	if v := trimmedOrEmpty(req.TransactionDate); v != "" {
		date, err := parseDate(v)
		if err != nil {
			return apperrors.NewValidationError("Invalid transactionDate")
		}
		txn.TransactionDate = date.UTC()
	}
	return nil
}

// applyUpdate copies the provided fields of req onto txn. Owner and attachments are never taken from req.
func applyUpdate(txn *domain.Transaction, req dto.TransactionRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return apperrors.NewValidationError("Title cannot be empty")
		}
		txn.Title = title
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return apperrors.NewValidationError("Category cannot be empty")
		}
		txn.Category = category
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return err
		}
		txn.Amount = amount
	}
	if req.Counterparty != nil {
		txn.Counterparty = strings.TrimSpace(*req.Counterparty)
	}
	if req.Remarks != nil {
		txn.Remarks = strings.TrimSpace(*req.Remarks)
	}
	return applyEnums(txn, req)
}

// AmountScale and maxAmount mirror the NUMERIC(20, 4) amount column.
const AmountScale = 4

var maxAmount = decimal.New(1, 20-AmountScale)

func parseAmount(raw json.Number) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw.String()))
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError("Amount must be a valid number")
	}
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError("Amount must be greater than zero")
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("Amount must have at most %d decimal places", AmountScale))
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, apperrors.NewValidationError("Amount is too large")
	}
	return amount, nil
}

func trimmedOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
