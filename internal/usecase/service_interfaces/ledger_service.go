package service_interfaces

import (
	"context"
	"time"

	"github.com/corebank/ledger/internal/commons"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/usecase/models"
)

// LedgerService is the surface the CLI shell drives.
type LedgerService interface {
	Load(ctx context.Context) error

	Register(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.RegisterCustomerResponse], error)
	Authenticate(ctx context.Context, req models.AuthenticateRequest) (commons.Response[models.AccountInfoResponse], error)
	CheckBalance(ctx context.Context, req models.AuthenticateRequest) (commons.Response[models.BalanceResponse], error)
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.WithdrawResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)

	ToggleStatus(ctx context.Context, accountNumber string) (commons.Response[models.ToggleStatusResponse], error)
	DeleteCustomer(ctx context.Context, accountNumber string) (commons.Response[models.DeleteCustomerResponse], error)
	UnlockCustomer(ctx context.Context, accountNumber string) (commons.Response[models.UnlockCustomerResponse], error)
	BackupData(ctx context.Context) (commons.Response[models.BackupResponse], error)
	ExportCustomersCSV(ctx context.Context, path string) (commons.Response[models.ExportResponse], error)
	ClearAllData(ctx context.Context) (commons.Response[models.DeleteCustomerResponse], error)

	ListCustomers() []models.CustomerSummary
	ListCustomersByType(accountType domain.AccountType) []models.CustomerSummary
	ListCustomersByStatus(active bool) []models.CustomerSummary
	History(accountNumber string) []domain.Transaction
	RecentTransactions(accountNumber string, n int) []domain.Transaction
	AllTransactions() []domain.Transaction
	TransactionsByType(txType domain.TransactionType) []domain.Transaction
	TransactionsInRange(accountNumber string, from, to time.Time) []domain.Transaction
	AccountTotals(accountNumber string) models.AccountTotals
	Statistics() models.Statistics
}
