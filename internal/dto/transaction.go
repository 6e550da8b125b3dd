package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// TransactionRequest carries create and update payloads. Pointer fields distinguish
// "not sent" from "sent empty"; only sent fields are applied on update.
// The owner always comes from the auth context, never from the body.
type TransactionRequest struct {
	Title           *string        `json:"title"`
	Amount          *json.Number   `json:"amount" swaggertype:"number"`
	Category        *string        `json:"category"`
	TransactionType *string        `json:"transactionType" example:"Debit"`
	TransactionMode *string        `json:"transactionMode" example:"UPI"`
	TransactionDate *string        `json:"transactionDate" example:"2024-02-14"`
	Counterparty    *string        `json:"counterparty"`
	Remarks         *string        `json:"remarks"`
	CustomFields    map[string]any `json:"customFields"`

	// AttachmentIDs lists the publicIds to keep on update. Nil means the client did not send it.
	AttachmentIDs *[]string `json:"attachmentIds"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	TransactionType string `form:"transactionType"`
	TransactionMode string `form:"transactionMode"`
	Category        string `form:"category"`
	Counterparty    string `form:"counterparty"`
	StartDate       string `form:"startDate"`
	EndDate         string `form:"endDate"`
	Month           int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year            int    `form:"year" binding:"omitempty,min=1970,max=9999"`
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=20"`
}

// TransactionResponse is the JSON shape of a transaction.
type TransactionResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Title           string              `json:"title"`
	Category        string              `json:"category"`
	TransactionType string              `json:"transactionType"`
	TransactionMode string              `json:"transactionMode"`
	Amount          json.Number         `json:"amount" swaggertype:"number"`
	TransactionDate time.Time           `json:"transactionDate"`
	Counterparty    string              `json:"counterparty"`
	Remarks         string              `json:"remarks"`
	Active          bool                `json:"active"`
	Attachments     []domain.Attachment `json:"attachments"`
	CustomFields    map[string]any      `json:"customFields"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
	LastUpdatedAt   time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy   string              `json:"lastUpdatedBy"`
}

// PaginationResponse describes where a page sits in the full result set.
type PaginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// ListTransactionsResponse wraps one page of transactions.
type ListTransactionsResponse struct {
	Data       []TransactionResponse `json:"data"`
	Pagination PaginationResponse    `json:"pagination"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message" example:"Transaction deleted successfully"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	attachments := t.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	customFields := t.CustomFields
	if customFields == nil {
		customFields = map[string]any{}
	}
	return TransactionResponse{
		ID:              t.TransactionID,
		UserID:          t.UserID,
		Title:           t.Title,
		Category:        t.Category,
		TransactionType: string(t.TransactionType),
		TransactionMode: string(t.TransactionMode),
		Amount:          json.Number(t.Amount.String()),
		TransactionDate: t.TransactionDate,
		Counterparty:    t.Counterparty,
		Remarks:         t.Remarks,
		Active:          t.Active,
		Attachments:     attachments,
		CustomFields:    customFields,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
		LastUpdatedAt:   t.LastUpdatedAt,
		LastUpdatedBy:   t.LastUpdatedBy,
	}
}

func ToTransactionResponseSlice(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}
