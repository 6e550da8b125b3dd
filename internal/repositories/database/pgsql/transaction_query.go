package pgsql

import (
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

const transactionColumns = `transaction_id, user_id, title, category, transaction_type, transaction_mode, amount,
        transaction_date, counterparty, remarks, active, attachments, custom_fields,
        created_at, created_by, last_updated_at, last_updated_by`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE/ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// transactionWhere builds the owner-scoped WHERE clause of a listing and its positional arguments.
func transactionWhere(userID string, f domain.TransactionFilter) (string, []any) {
	args := []any{userID}
	conds := []string{"user_id = $1"}

	add := func(format string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if f.ActiveOnly {
		conds = append(conds, "active = TRUE")
	}
	if f.TransactionType != nil {
		add("transaction_type = $%d", string(*f.TransactionType))
	}
	if f.TransactionMode != nil {
		add("transaction_mode = $%d", string(*f.TransactionMode))
	}
	if f.Category != nil {
		add("category = $%d", *f.Category)
	}
	if f.Counterparty != "" {
		add(`counterparty ILIKE $%d ESCAPE '\'`, "%"+escapeLike(f.Counterparty)+"%")
	}
	if f.From != nil {
		add("transaction_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("transaction_date <= $%d", *f.To)
	}

	return strings.Join(conds, " AND "), args
}
