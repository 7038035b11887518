package memory

import (
	"context"
	"sync"

	"github.com/corebank/ledger/internal/domain"
)

// LedgerStore keeps the last saved state in memory. It backs service tests
// the same way the flat-file store backs the real CLI.
type LedgerStore struct {
	mu           sync.Mutex
	Customers    map[string]*domain.Customer
	Transactions []domain.Transaction
	SaveErr      error
	Backups      int
	Cleared      bool
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{Customers: make(map[string]*domain.Customer)}
}

func (s *LedgerStore) LoadCustomers(_ context.Context) (map[string]*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*domain.Customer, len(s.Customers))
	for number, customer := range s.Customers {
		out[number] = customer
	}
	return out, nil
}

func (s *LedgerStore) LoadTransactions(_ context.Context) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.Transactions))
	copy(out, s.Transactions)
	return out, nil
}

func (s *LedgerStore) SaveCustomers(_ context.Context, customers map[string]*domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	out := make(map[string]*domain.Customer, len(customers))
	for number, customer := range customers {
		out[number] = customer
	}
	s.Customers = out
	return nil
}

func (s *LedgerStore) SaveTransactions(_ context.Context, transactions []domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	out := make([]domain.Transaction, len(transactions))
	copy(out, transactions)
	s.Transactions = out
	return nil
}

func (s *LedgerStore) Backup(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Backups++
	return "memory", nil
}

func (s *LedgerStore) ExportCustomersCSV(_ context.Context, _ string, _ map[string]*domain.Customer) error {
	return nil
}

func (s *LedgerStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Customers = make(map[string]*domain.Customer)
	s.Transactions = nil
	s.Cleared = true
	return nil
}
