package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/usecase/models"
)

// Read-only queries. Listings come back as snapshots; mutating the results
// never touches the registry.

func (s *LedgerService) ListCustomers() []models.CustomerSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summariesLocked(func(*domain.Customer) bool { return true })
}

func (s *LedgerService) ListCustomersByType(accountType domain.AccountType) []models.CustomerSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summariesLocked(func(c *domain.Customer) bool {
		return c.Account().Type() == accountType
	})
}

func (s *LedgerService) ListCustomersByStatus(active bool) []models.CustomerSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summariesLocked(func(c *domain.Customer) bool {
		return c.Account().Active() == active
	})
}

// History returns the account's transactions newest first; equal timestamps
// keep their insertion order.
func (s *LedgerService) History(accountNumber string) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Transaction
	for _, tx := range s.transactions {
		if tx.AccountNumber == accountNumber {
			out = append(out, tx)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (s *LedgerService) RecentTransactions(accountNumber string, n int) []domain.Transaction {
	history := s.History(accountNumber)
	if n < 0 {
		n = 0
	}
	if len(history) > n {
		history = history[:n]
	}
	return history
}

func (s *LedgerService) AllTransactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *LedgerService) TransactionsByType(txType domain.TransactionType) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Transaction
	for _, tx := range s.transactions {
		if tx.Type == txType {
			out = append(out, tx)
		}
	}
	return out
}

func (s *LedgerService) TransactionsInRange(accountNumber string, from, to time.Time) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Transaction
	for _, tx := range s.transactions {
		if tx.AccountNumber == accountNumber && tx.Timestamp.After(from) && tx.Timestamp.Before(to) {
			out = append(out, tx)
		}
	}
	return out
}

// AccountTotals sums credits (deposits and transfers in) and debits
// (withdrawals and transfers out) for one account.
func (s *LedgerService) AccountTotals(accountNumber string) models.AccountTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deposits := decimal.Zero
	withdrawals := decimal.Zero
	count := 0

	for _, tx := range s.transactions {
		if tx.AccountNumber != accountNumber {
			continue
		}
		count++
		switch tx.Type {
		case domain.TransactionTypeDeposit, domain.TransactionTypeTransferIn:
			deposits = deposits.Add(tx.Amount)
		case domain.TransactionTypeWithdrawal, domain.TransactionTypeTransferOut:
			withdrawals = withdrawals.Add(tx.Amount)
		}
	}

	return models.AccountTotals{
		AccountNumber:    accountNumber,
		TotalDeposits:    deposits.StringFixed(2),
		TotalWithdrawals: withdrawals.StringFixed(2),
		TransactionCount: count,
	}
}

func (s *LedgerService) Statistics() models.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Statistics{
		CustomerCount:    len(s.customers),
		TransactionCount: len(s.transactions),
	}

	total := decimal.Zero
	for _, customer := range s.customers {
		account := customer.Account()
		total = total.Add(account.Balance())

		if account.Active() {
			stats.ActiveCount++
		} else {
			stats.SuspendedCount++
		}
		if customer.Locked() {
			stats.LockedCount++
		}
		if account.Type() == domain.AccountTypeSavings {
			stats.SavingsCount++
		} else {
			stats.CheckingCount++
		}
	}

	stats.TotalBalance = total.StringFixed(2)
	return stats
}

// summariesLocked expects the registry read lock to be held.
func (s *LedgerService) summariesLocked(keep func(*domain.Customer) bool) []models.CustomerSummary {
	var out []models.CustomerSummary
	for _, customer := range s.customers {
		if !keep(customer) {
			continue
		}
		out = append(out, customerSummary(customer))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountNumber < out[j].AccountNumber
	})
	return out
}

func customerSummary(customer *domain.Customer) models.CustomerSummary {
	account := customer.Account()
	status := "Active"
	if !account.Active() {
		status = "Suspended"
	}

	return models.CustomerSummary{
		AccountNumber: account.Number(),
		Name:          customer.Name(),
		AccountType:   string(account.Type()),
		Balance:       account.Balance().StringFixed(2),
		Status:        status,
		Locked:        customer.Locked(),
		CreatedAt:     account.CreatedAt().Format("2006-01-02"),
	}
}
