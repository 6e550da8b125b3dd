package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/core/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func strPtr(s string) *string { return &s }

func numPtr(s string) *json.Number {
	n := json.Number(s)
	return &n
}

func fileNamed(name string) interface{} {
	return mock.MatchedBy(func(f domain.UploadFile) bool { return f.FileName == name })
}

type TransactionServiceTestSuite struct {
	suite.Suite
	repo      *MockTransactionRepository
	store     *MockObjectStore
	validator *MockCustomFieldValidator
	service   portssvc.TransactionSvcFacade
	ctx       context.Context
	userID    string
	now       time.Time
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.repo = new(MockTransactionRepository)
	s.store = new(MockObjectStore)
	s.validator = new(MockCustomFieldValidator)
	s.ctx = context.Background()
	s.userID = uuid.NewString()
	s.now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s.service = services.NewTransactionService(s.repo, s.store,
		services.WithCustomFieldValidator(s.validator),
		services.WithClock(func() time.Time { return s.now }),
	)
}

func (s *TransactionServiceTestSuite) existing(attachmentIDs ...string) *domain.Transaction {
	txn := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          s.userID,
		Title:           "Rent",
		Category:        "Housing",
		TransactionType: domain.Debit,
		TransactionMode: domain.ModeBank,
		Amount:          decimal.NewFromInt(1200),
		TransactionDate: s.now.AddDate(0, 0, -3),
		Active:          true,
		CustomFields:    map[string]any{},
		AuditFields:     domain.NewAuditFields(s.userID, s.now.AddDate(0, 0, -3)),
	}
	for _, id := range attachmentIDs {
		txn.Attachments = append(txn.Attachments, domain.Attachment{URL: "https://cdn/" + id, PublicID: id})
	}
	return txn
}

func publicIDs(attachments []domain.Attachment) []string {
	ids := make([]string, len(attachments))
	for i, a := range attachments {
		ids[i] = a.PublicID
	}
	return ids
}

// --- Create ---

func (s *TransactionServiceTestSuite) TestCreate_AppliesDefaults() {
	s.validator.On("ValidateCustomFields", mock.Anything, s.userID, map[string]any{}, true).Return(nil).Once()
	s.repo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.UserID == s.userID &&
			t.Title == "Coffee" &&
			t.TransactionType == domain.Debit &&
			t.TransactionMode == domain.ModeUPI &&
			t.TransactionDate.Equal(s.now) &&
			t.Amount.Equal(decimal.RequireFromString("3.75")) &&
			t.Active &&
			t.CreatedBy == s.userID
	})).Return(nil).Once()

	txn, err := s.service.CreateTransaction(s.ctx, s.userID, dto.TransactionRequest{
		Title:    strPtr("  Coffee "),
		Amount:   numPtr("3.75"),
		Category: strPtr("Food"),
	}, nil)

	s.Require().NoError(err)
	s.Equal("Coffee", txn.Title)
	s.Empty(txn.Attachments)
	s.repo.AssertExpectations(s.T())
	s.validator.AssertExpectations(s.T())
	s.store.AssertNotCalled(s.T(), "Upload", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreate_RequiredFields() {
	_, err := s.service.CreateTransaction(s.ctx, s.userID, dto.TransactionRequest{
		Title:  strPtr("Coffee"),
		Amount: numPtr("3"),
	}, nil)

	s.ErrorIs(err, apperrors.ErrValidation)
	msg, _ := apperrors.Message(err)
	s.Equal("Title, amount and category are required", msg)
	s.repo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreate_AmountValidation() {
	for raw, want := range map[string]string{
		"abc":               "Amount must be a valid number",
		"0":                 "Amount must be greater than zero",
		"-5":                "Amount must be greater than zero",
		"0.00001":           "Amount must have at most 4 decimal places",
		"19.99999":          "Amount must have at most 4 decimal places",
		"10000000000000000": "Amount is too large",
		"1e17":              "Amount is too large",
	} {
		_, err := s.service.CreateTransaction(s.ctx, s.userID, dto.TransactionRequest{
			Title:    strPtr("x"),
			Amount:   numPtr(raw),
			Category: strPtr("c"),
		}, nil)
		s.ErrorIs(err, apperrors.ErrValidation, raw)
		msg, _ := apperrors.Message(err)
		s.Equal(want, msg, raw)
	}
}

func (s *TransactionServiceTestSuite) TestCreate_AmountAtColumnLimits() {
	for _, raw := range []string{"0.0001", "12.340000", "9999999999999999.9999"} {
		s.validator.On("ValidateCustomFields", mock.Anything, s.userID, map[string]any{}, true).Return(nil).Once()
		s.repo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
			return t.Amount.Equal(decimal.RequireFromString(raw))
		})).Return(nil).Once()

		_, err := s.service.CreateTransaction(s.ctx, s.userID, dto.TransactionRequest{
			Title:    strPtr("x"),
			Amount:   numPtr(raw),
			Category: strPtr("c"),
		}, nil)

		s.NoError(err, raw)
	}
	s.repo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreate_InvalidEnum() {
	_, err := s.service.CreateTransaction(s.ctx, s.userID, dto.TransactionRequest{
		Title:           strPtr("x"),
		Amount:          numPtr("1"),
		Category:        strPtr("c"),
		TransactionMode: strPtr("Cheque"),
	}, nil)

	msg, _ := apperrors.Message(err)
	s.Equal("Invalid transactionMode: Cheque", msg)
}

func (s *TransactionServiceTestSuite) TestCreate_CustomFieldRejected() {
	s.validator.On("ValidateCustomFields", mock.Anything, s.userID, mock.Anything, true).
		Return(apperrors.NewValidationError("Custom field 'Invoice' is required")).Once()

	_, err := s.service.CreateTransaction(s.ctx, s.userID, dto.TransactionRequest{
		Title:    strPtr("x"),
		Amount:   numPtr("1"),
		Category: strPtr("c"),
	}, []domain.UploadFile{{FileName: "a.png"}})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.store.AssertNotCalled(s.T(), "Upload", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreate_UploadsKeepInputOrder() {
	s.validator.On("ValidateCustomFields", mock.Anything, s.userID, mock.Anything, true).Return(nil)
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png"} {
		s.store.On("Upload", mock.Anything, fileNamed(name)).
			Return(&domain.StoredObject{URL: "https://cdn/" + name, PublicID: "transactions/" + name}, nil).Once()
	}
	s.repo.On("SaveTransaction", mock.Anything, mock.Anything).Return(nil).Once()

	files := []domain.UploadFile{{FileName: "a.png"}, {FileName: "b.png"}, {FileName: "c.png"}, {FileName: "d.png"}}
	txn, err := s.service.CreateTransaction(s.ctx, s.userID, dto.TransactionRequest{
		Title: strPtr("x"), Amount: numPtr("1"), Category: strPtr("c"),
	}, files)

	s.Require().NoError(err)
	s.Equal([]string{"transactions/a.png", "transactions/b.png", "transactions/c.png", "transactions/d.png"}, publicIDs(txn.Attachments))
	s.Equal("a.png", txn.Attachments[0].OriginalName)
	s.store.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreate_SaveFailureCleansUpUploads() {
	s.validator.On("ValidateCustomFields", mock.Anything, s.userID, mock.Anything, true).Return(nil)
	s.store.On("Upload", mock.Anything, fileNamed("a.png")).
		Return(&domain.StoredObject{URL: "u", PublicID: "transactions/a"}, nil).Once()
	s.repo.On("SaveTransaction", mock.Anything, mock.Anything).Return(errors.New("write failed")).Once()
	s.store.On("Delete", mock.Anything, "transactions/a").Return(nil).Once()

	_, err := s.service.CreateTransaction(s.ctx, s.userID, dto.TransactionRequest{
		Title: strPtr("x"), Amount: numPtr("1"), Category: strPtr("c"),
	}, []domain.UploadFile{{FileName: "a.png"}})

	s.Error(err)
	s.store.AssertExpectations(s.T())
}

// --- Read ---

func (s *TransactionServiceTestSuite) TestGet_ArchivedIsNotFound() {
	txn := s.existing()
	txn.Active = false
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, txn.TransactionID).Return(txn, nil).Once()

	_, err := s.service.GetTransaction(s.ctx, s.userID, txn.TransactionID)

	s.ErrorIs(err, apperrors.ErrNotFound)
	msg, _ := apperrors.Message(err)
	s.Equal("Transaction not found", msg)
}

func (s *TransactionServiceTestSuite) TestGet_OtherOwnerIsNotFound() {
	id := uuid.NewString()
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetTransaction(s.ctx, s.userID, id)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionServiceTestSuite) TestList_PaginationIsClamped() {
	s.repo.On("ListTransactions", mock.Anything, s.userID,
		mock.MatchedBy(func(f domain.TransactionFilter) bool { return f.ActiveOnly && f.TransactionType == nil }),
		100, 200,
	).Return([]domain.Transaction{*s.existing()}, int64(250), nil).Once()

	resp, err := s.service.ListTransactions(s.ctx, s.userID, dto.ListTransactionsParams{
		TransactionType: "All",
		Page:            3,
		Limit:           500,
	})

	s.Require().NoError(err)
	s.Equal(dto.PaginationResponse{Total: 250, Page: 3, Limit: 100, TotalPages: 3}, resp.Pagination)
	s.Len(resp.Data, 1)
	s.repo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestList_MonthWinsOverDateRange() {
	s.repo.On("ListTransactions", mock.Anything, s.userID,
		mock.MatchedBy(func(f domain.TransactionFilter) bool {
			return f.From != nil && f.To != nil &&
				f.From.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) &&
				f.To.Equal(time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, time.UTC)) &&
				*f.TransactionType == domain.Credit
		}),
		20, 0,
	).Return([]domain.Transaction{}, int64(0), nil).Once()

	resp, err := s.service.ListTransactions(s.ctx, s.userID, dto.ListTransactionsParams{
		TransactionType: "Credit",
		StartDate:       "2023-01-01",
		EndDate:         "2023-12-31",
		Month:           2,
		Year:            2024,
	})

	s.Require().NoError(err)
	s.Equal(0, resp.Pagination.TotalPages)
	s.NotNil(resp.Data)
	s.repo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestList_DateOnlyEndCoversWholeDay() {
	s.repo.On("ListTransactions", mock.Anything, s.userID,
		mock.MatchedBy(func(f domain.TransactionFilter) bool {
			return f.To != nil && f.To.Equal(time.Date(2024, 1, 31, 23, 59, 59, 999_000_000, time.UTC))
		}),
		20, 0,
	).Return(nil, int64(0), nil).Once()

	_, err := s.service.ListTransactions(s.ctx, s.userID, dto.ListTransactionsParams{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestList_InvalidFilters() {
	cases := map[string]dto.ListTransactionsParams{
		"Invalid transactionType: Refund":     {TransactionType: "Refund"},
		"Invalid startDate":                   {StartDate: "yesterday"},
		"startDate must not be after endDate": {StartDate: "2024-02-01", EndDate: "2024-01-01"},
	}
	for want, params := range cases {
		_, err := s.service.ListTransactions(s.ctx, s.userID, params)
		s.ErrorIs(err, apperrors.ErrValidation, want)
		msg, _ := apperrors.Message(err)
		s.Equal(want, msg)
	}
	s.repo.AssertNotCalled(s.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Update: attachment reconciliation ---

func (s *TransactionServiceTestSuite) TestUpdate_ReconcilesAttachments() {
	current := s.existing("transactions/A", "transactions/B", "transactions/C")
	var calls []string

	s.repo.On("FindTransactionByID", mock.Anything, s.userID, current.TransactionID).Return(current, nil).Once()
	s.store.On("Upload", mock.Anything, fileNamed("new.pdf")).
		Run(func(mock.Arguments) { calls = append(calls, "upload") }).
		Return(&domain.StoredObject{URL: "https://cdn/new", PublicID: "transactions/new"}, nil).Once()
	s.repo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		ids := publicIDs(t.Attachments)
		return len(ids) == 2 && ids[0] == "transactions/B" && ids[1] == "transactions/new" &&
			t.Title == "Rent (March)" && t.UserID == s.userID && t.LastUpdatedAt.Equal(s.now)
	})).Run(func(mock.Arguments) { calls = append(calls, "persist") }).Return(nil).Once()
	s.store.On("Delete", mock.Anything, "transactions/A").
		Run(func(mock.Arguments) { calls = append(calls, "delete A") }).Return(nil).Once()
	s.store.On("Delete", mock.Anything, "transactions/C").
		Run(func(mock.Arguments) { calls = append(calls, "delete C") }).Return(nil).Once()

	keep := []string{"transactions/B"}
	txn, err := s.service.UpdateTransaction(s.ctx, s.userID, current.TransactionID, dto.TransactionRequest{
		Title:         strPtr("Rent (March)"),
		AttachmentIDs: &keep,
	}, []domain.UploadFile{{FileName: "new.pdf", ContentType: "application/pdf"}})

	s.Require().NoError(err)
	s.Equal([]string{"transactions/B", "transactions/new"}, publicIDs(txn.Attachments))
	s.Equal([]string{"upload", "persist", "delete A", "delete C"}, calls)
	s.store.AssertNotCalled(s.T(), "Delete", mock.Anything, "transactions/B")
	s.store.AssertExpectations(s.T())
	s.repo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdate_MissingAttachmentIDsDropsAll() {
	current := s.existing("transactions/A", "transactions/B")
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, current.TransactionID).Return(current, nil).Once()
	s.repo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return len(t.Attachments) == 0
	})).Return(nil).Once()
	s.store.On("Delete", mock.Anything, "transactions/A").Return(nil).Once()
	s.store.On("Delete", mock.Anything, "transactions/B").Return(nil).Once()

	txn, err := s.service.UpdateTransaction(s.ctx, s.userID, current.TransactionID, dto.TransactionRequest{
		Remarks: strPtr("paid"),
	}, nil)

	s.Require().NoError(err)
	s.Empty(txn.Attachments)
	s.Equal("paid", txn.Remarks)
	s.store.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdate_UploadFailureAbortsBeforePersist() {
	current := s.existing("transactions/A")
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, current.TransactionID).Return(current, nil).Once()
	s.store.On("Upload", mock.Anything, fileNamed("ok.png")).
		Return(&domain.StoredObject{URL: "u", PublicID: "transactions/ok"}, nil).Once()
	s.store.On("Upload", mock.Anything, fileNamed("bad.png")).
		Return(nil, errors.New("quota exceeded")).Once()
	s.store.On("Delete", mock.Anything, "transactions/ok").Return(nil).Once()

	keep := []string{}
	_, err := s.service.UpdateTransaction(s.ctx, s.userID, current.TransactionID, dto.TransactionRequest{
		AttachmentIDs: &keep,
	}, []domain.UploadFile{{FileName: "ok.png"}, {FileName: "bad.png"}})

	s.ErrorIs(err, apperrors.ErrUpload)
	msg, _ := apperrors.Message(err)
	s.Equal("Failed to upload attachments", msg)
	s.repo.AssertNotCalled(s.T(), "UpdateTransaction", mock.Anything, mock.Anything)
	s.store.AssertNotCalled(s.T(), "Delete", mock.Anything, "transactions/A")
	s.store.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdate_PersistFailureKeepsOldAttachments() {
	current := s.existing("transactions/A")
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, current.TransactionID).Return(current, nil).Once()
	s.store.On("Upload", mock.Anything, fileNamed("n.png")).
		Return(&domain.StoredObject{URL: "u", PublicID: "transactions/n"}, nil).Once()
	s.repo.On("UpdateTransaction", mock.Anything, mock.Anything).Return(errors.New("write conflict")).Once()
	s.store.On("Delete", mock.Anything, "transactions/n").Return(nil).Once()

	keep := []string{}
	_, err := s.service.UpdateTransaction(s.ctx, s.userID, current.TransactionID, dto.TransactionRequest{
		AttachmentIDs: &keep,
	}, []domain.UploadFile{{FileName: "n.png"}})

	s.Error(err)
	s.store.AssertNotCalled(s.T(), "Delete", mock.Anything, "transactions/A")
	s.store.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdate_PartialCustomFieldsNotRequireAll() {
	current := s.existing()
	fields := map[string]any{"invoiceNo": "INV-9"}
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, current.TransactionID).Return(current, nil).Once()
	s.validator.On("ValidateCustomFields", mock.Anything, s.userID, fields, false).Return(nil).Once()
	s.repo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.CustomFields["invoiceNo"] == "INV-9"
	})).Return(nil).Once()

	_, err := s.service.UpdateTransaction(s.ctx, s.userID, current.TransactionID, dto.TransactionRequest{
		CustomFields: fields,
	}, nil)

	s.Require().NoError(err)
	s.validator.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdate_EmptyTitleRejected() {
	current := s.existing()
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, current.TransactionID).Return(current, nil).Once()

	_, err := s.service.UpdateTransaction(s.ctx, s.userID, current.TransactionID, dto.TransactionRequest{
		Title: strPtr("   "),
	}, nil)

	msg, _ := apperrors.Message(err)
	s.Equal("Title cannot be empty", msg)
	s.repo.AssertNotCalled(s.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestUpdate_NotOwned() {
	id := uuid.NewString()
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.UpdateTransaction(s.ctx, s.userID, id, dto.TransactionRequest{}, []domain.UploadFile{{FileName: "x.png"}})

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.store.AssertNotCalled(s.T(), "Upload", mock.Anything, mock.Anything)
}

// --- Delete and lifecycle ---

func (s *TransactionServiceTestSuite) TestDelete_AttachmentFailuresAreSwallowed() {
	current := s.existing("transactions/A", "transactions/B")
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, current.TransactionID).Return(current, nil).Once()
	s.repo.On("DeleteTransaction", mock.Anything, s.userID, current.TransactionID).Return(nil).Once()
	s.store.On("Delete", mock.Anything, "transactions/A").Return(errors.New("timeout")).Once()
	s.store.On("Delete", mock.Anything, "transactions/B").Return(nil).Once()

	err := s.service.DeleteTransaction(s.ctx, s.userID, current.TransactionID)

	s.NoError(err)
	s.store.AssertExpectations(s.T())
	s.store.AssertNumberOfCalls(s.T(), "Delete", 2)
}

func (s *TransactionServiceTestSuite) TestDelete_NotFoundTouchesNothing() {
	id := uuid.NewString()
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, id).Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.DeleteTransaction(s.ctx, s.userID, id)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.repo.AssertNotCalled(s.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything)
	s.store.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestArchiveThenRestore() {
	current := s.existing("transactions/A")
	s.repo.On("FindTransactionByID", mock.Anything, s.userID, current.TransactionID).Return(current, nil)
	s.repo.On("SetTransactionActive", mock.Anything, s.userID, current.TransactionID, false, mock.Anything).Return(nil).Once()

	archived, err := s.service.ArchiveTransaction(s.ctx, s.userID, current.TransactionID)
	s.Require().NoError(err)
	s.False(archived.Active)
	s.Len(archived.Attachments, 1)

	s.repo.On("SetTransactionActive", mock.Anything, s.userID, current.TransactionID, true,
		mock.MatchedBy(func(a domain.AuditFields) bool { return a.LastUpdatedAt.Equal(s.now) }),
	).Return(nil).Once()

	restored, err := s.service.RestoreTransaction(s.ctx, s.userID, current.TransactionID)
	s.Require().NoError(err)
	s.True(restored.Active)
	s.repo.AssertExpectations(s.T())
	s.store.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
