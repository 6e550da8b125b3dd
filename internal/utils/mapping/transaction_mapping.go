package mapping

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/models"
)

// ToModelAttachments converts domain attachments to their stored shape. A nil slice becomes empty.
func ToModelAttachments(as []domain.Attachment) []models.Attachment {
	out := make([]models.Attachment, len(as))
	for i, a := range as {
		out[i] = models.Attachment{
			URL:          a.URL,
			PublicID:     a.PublicID,
			OriginalName: a.OriginalName,
			MimeType:     a.MimeType,
			Size:         a.Size,
		}
	}
	return out
}

// ToDomainAttachments converts stored attachments to domain attachments.
func ToDomainAttachments(as []models.Attachment) []domain.Attachment {
	out := make([]domain.Attachment, len(as))
	for i, a := range as {
		out[i] = domain.Attachment{
			URL:          a.URL,
			PublicID:     a.PublicID,
			OriginalName: a.OriginalName,
			MimeType:     a.MimeType,
			Size:         a.Size,
		}
	}
	return out
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	customFields := d.CustomFields
	if customFields == nil {
		customFields = map[string]any{}
	}
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		Title:           d.Title,
		Category:        d.Category,
		TransactionType: string(d.TransactionType),
		TransactionMode: string(d.TransactionMode),
		Amount:          d.Amount,
		TransactionDate: d.TransactionDate,
		Counterparty:    d.Counterparty,
		Remarks:         d.Remarks,
		Active:          d.Active,
		Attachments:     ToModelAttachments(d.Attachments),
		CustomFields:    customFields,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	customFields := m.CustomFields
	if customFields == nil {
		customFields = map[string]any{}
	}
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		Title:           m.Title,
		Category:        m.Category,
		TransactionType: domain.TransactionType(m.TransactionType),
		TransactionMode: domain.TransactionMode(m.TransactionMode),
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		Counterparty:    m.Counterparty,
		Remarks:         m.Remarks,
		Active:          m.Active,
		Attachments:     ToDomainAttachments(m.Attachments),
		CustomFields:    customFields,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
