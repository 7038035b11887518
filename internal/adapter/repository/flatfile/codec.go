package flatfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corebank/ledger/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	timeLayout     = "2006-01-02 15:04:05"
	fieldSeparator = "|"

	customerFieldCount    = 11
	transactionFieldCount = 7
)

func encodeCustomer(c *domain.Customer) string {
	account := c.Account()
	return strings.Join([]string{
		sanitizeField(c.Name()),
		c.CredentialHash(),
		account.Number(),
		string(account.Type()),
		account.Balance().StringFixed(2),
		strconv.FormatBool(account.Active()),
		account.CreatedAt().Format(timeLayout),
		account.InterestRate().String(),
		account.LastInterestAt().Format(timeLayout),
		strconv.Itoa(c.FailedAttempts()),
		strconv.FormatBool(c.Locked()),
	}, fieldSeparator)
}

func decodeCustomer(line string) (*domain.Customer, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < customerFieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", customerFieldCount, len(parts))
	}

	accountType, err := domain.ParseAccountType(parts[3])
	if err != nil {
		return nil, fmt.Errorf("account type %q: %w", parts[3], err)
	}
	balance, err := decimal.NewFromString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	active, err := strconv.ParseBool(parts[5])
	if err != nil {
		return nil, fmt.Errorf("active flag: %w", err)
	}
	createdAt, err := time.ParseInLocation(timeLayout, parts[6], time.Local)
	if err != nil {
		return nil, fmt.Errorf("created date: %w", err)
	}
	interestRate, err := decimal.NewFromString(parts[7])
	if err != nil {
		return nil, fmt.Errorf("interest rate: %w", err)
	}
	lastInterestAt, err := time.ParseInLocation(timeLayout, parts[8], time.Local)
	if err != nil {
		return nil, fmt.Errorf("last interest date: %w", err)
	}
	failedAttempts, err := strconv.Atoi(parts[9])
	if err != nil {
		return nil, fmt.Errorf("failed attempts: %w", err)
	}
	locked, err := strconv.ParseBool(parts[10])
	if err != nil {
		return nil, fmt.Errorf("lock flag: %w", err)
	}

	account := domain.RestoreAccount(parts[2], parts[0], accountType, balance, active, createdAt, interestRate, lastInterestAt)
	return domain.RestoreCustomer(parts[0], parts[1], account, failedAttempts, locked), nil
}

func encodeTransaction(tx domain.Transaction) string {
	return strings.Join([]string{
		tx.ID,
		tx.AccountNumber,
		string(tx.Type),
		tx.Amount.StringFixed(2),
		tx.Timestamp.Format(timeLayout),
		sanitizeField(tx.Description),
		tx.BalanceAfter.StringFixed(2),
	}, fieldSeparator)
}

func decodeTransaction(line string) (domain.Transaction, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < transactionFieldCount {
		return domain.Transaction{}, fmt.Errorf("expected %d fields, got %d", transactionFieldCount, len(parts))
	}

	txType, err := domain.ParseTransactionType(parts[2])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction type %q: %w", parts[2], err)
	}
	amount, err := decimal.NewFromString(parts[3])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	timestamp, err := time.ParseInLocation(timeLayout, parts[4], time.Local)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("timestamp: %w", err)
	}
	balanceAfter, err := decimal.NewFromString(parts[6])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("balance after: %w", err)
	}

	return domain.Transaction{
		ID:            parts[0],
		AccountNumber: parts[1],
		Type:          txType,
		Amount:        amount,
		Timestamp:     timestamp,
		Description:   parts[5],
		BalanceAfter:  balanceAfter,
	}, nil
}

// sanitizeField keeps free-text fields from breaking the line format.
func sanitizeField(raw string) string {
	return strings.ReplaceAll(raw, fieldSeparator, "/")
}
