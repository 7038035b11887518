package models

type RegisterCustomerResponse struct {
	AccountNumber string
	Name          string
	AccountType   string
	Balance       string
}

type AccountInfoResponse struct {
	AccountNumber string
	Name          string
	AccountType   string
	Balance       string
	Status        string
	CreatedAt     string
}

type BalanceResponse struct {
	AccountNumber   string
	Balance         string
	InterestAccrued string
}

type DepositResponse struct {
	AccountNumber string
	Amount        string
	Balance       string
}

type WithdrawResponse struct {
	AccountNumber string
	Amount        string
	Balance       string
}

type TransferResponse struct {
	FromAccount string
	ToAccount   string
	Amount      string
	FromBalance string
}

type ToggleStatusResponse struct {
	AccountNumber string
	Active        bool
}

type DeleteCustomerResponse struct {
	AccountNumber string
}

type UnlockCustomerResponse struct {
	AccountNumber string
}

type BackupResponse struct {
	Path string
}

type ExportResponse struct {
	Path      string
	Customers int
}

type CustomerSummary struct {
	AccountNumber string
	Name          string
	AccountType   string
	Balance       string
	Status        string
	Locked        bool
	CreatedAt     string
}

type AccountTotals struct {
	AccountNumber    string
	TotalDeposits    string
	TotalWithdrawals string
	TransactionCount int
}

type Statistics struct {
	CustomerCount    int
	ActiveCount      int
	SuspendedCount   int
	LockedCount      int
	SavingsCount     int
	CheckingCount    int
	TotalBalance     string
	TransactionCount int
}
