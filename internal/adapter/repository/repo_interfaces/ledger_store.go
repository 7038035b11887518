package repo_interfaces

import (
	"context"

	"github.com/corebank/ledger/internal/domain"
)

// LedgerStore is the durable home of the registry and the transaction log.
// Save calls rewrite the full data set; Load calls tolerate a missing file
// (empty data set) and skip malformed records.
type LedgerStore interface {
	LoadCustomers(ctx context.Context) (map[string]*domain.Customer, error)
	LoadTransactions(ctx context.Context) ([]domain.Transaction, error)
	SaveCustomers(ctx context.Context, customers map[string]*domain.Customer) error
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) error
	Backup(ctx context.Context) (string, error)
	ExportCustomersCSV(ctx context.Context, path string, customers map[string]*domain.Customer) error
	ClearAll(ctx context.Context) error
}
