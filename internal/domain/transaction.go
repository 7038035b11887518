package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
)

func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(raw) {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransferIn, TransactionTypeTransferOut:
		return TransactionType(raw), nil
	default:
		return "", ErrValidation
	}
}

// Transaction is an immutable record of one balance-affecting event.
// BalanceAfter is an informational snapshot, never used to rebuild balances.
type Transaction struct {
	ID            string
	AccountNumber string
	Type          TransactionType
	Amount        decimal.Decimal
	Timestamp     time.Time
	Description   string
	BalanceAfter  decimal.Decimal
}
