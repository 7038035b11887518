package flatfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/adapter/repository/flatfile"
	"github.com/corebank/ledger/internal/domain"
)

func seedCustomer(number, name string, balance int64, active, locked bool) *domain.Customer {
	created := time.Date(2026, 2, 1, 9, 30, 0, 0, time.Local)
	account := domain.RestoreAccount(number, name, domain.AccountTypeSavings,
		decimal.NewFromInt(balance), active, created,
		domain.AccountTypeSavings.AnnualRate(), created)
	attempts := 0
	if locked {
		attempts = domain.MaxFailedAttempts
	}
	return domain.RestoreCustomer(name, "$2a$04$fakehashfakehashfakehash", account, attempts, locked)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := flatfile.NewStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	customers := map[string]*domain.Customer{
		"ACC100": seedCustomer("ACC100", "Ada Lovelace", 250, true, false),
		"ACC200": seedCustomer("ACC200", "Ben Carter", 75, false, true),
	}
	transactions := []domain.Transaction{
		{
			ID:            "TXN1-aaaa",
			AccountNumber: "ACC100",
			Type:          domain.TransactionTypeDeposit,
			Amount:        decimal.NewFromInt(250),
			Timestamp:     time.Date(2026, 2, 1, 9, 30, 1, 0, time.Local),
			Description:   "Initial deposit",
			BalanceAfter:  decimal.NewFromInt(250),
		},
		{
			ID:            "TXN2-bbbb",
			AccountNumber: "ACC100",
			Type:          domain.TransactionTypeTransferOut,
			Amount:        decimal.NewFromInt(25),
			Timestamp:     time.Date(2026, 2, 2, 12, 0, 0, 0, time.Local),
			Description:   "Transfer to ACC200",
			BalanceAfter:  decimal.NewFromInt(225),
		},
	}

	if err := store.SaveCustomers(ctx, customers); err != nil {
		t.Fatalf("save customers: %v", err)
	}
	if err := store.SaveTransactions(ctx, transactions); err != nil {
		t.Fatalf("save transactions: %v", err)
	}

	reopened, err := flatfile.NewStore(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	loadedCustomers, err := reopened.LoadCustomers(ctx)
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if len(loadedCustomers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(loadedCustomers))
	}

	for number, want := range customers {
		got, ok := loadedCustomers[number]
		if !ok {
			t.Fatalf("customer %s missing after round trip", number)
		}
		if got.Name() != want.Name() {
			t.Fatalf("name mismatch for %s: %q vs %q", number, got.Name(), want.Name())
		}
		if got.CredentialHash() != want.CredentialHash() {
			t.Fatalf("credential hash mismatch for %s", number)
		}
		if got.Locked() != want.Locked() || got.FailedAttempts() != want.FailedAttempts() {
			t.Fatalf("lock state mismatch for %s", number)
		}
		if !got.Account().Balance().Equal(want.Account().Balance()) {
			t.Fatalf("balance mismatch for %s: %s vs %s", number, got.Account().Balance(), want.Account().Balance())
		}
		if got.Account().Active() != want.Account().Active() {
			t.Fatalf("active flag mismatch for %s", number)
		}
		if !got.Account().CreatedAt().Equal(want.Account().CreatedAt()) {
			t.Fatalf("created date mismatch for %s", number)
		}
		if !got.Account().InterestRate().Equal(want.Account().InterestRate()) {
			t.Fatalf("interest rate mismatch for %s", number)
		}
	}

	loadedTransactions, err := reopened.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	if len(loadedTransactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(loadedTransactions))
	}
	for i, want := range transactions {
		got := loadedTransactions[i]
		if got.ID != want.ID || got.AccountNumber != want.AccountNumber || got.Type != want.Type {
			t.Fatalf("transaction %d identity mismatch: %+v", i, got)
		}
		if !got.Amount.Equal(want.Amount) || !got.BalanceAfter.Equal(want.BalanceAfter) {
			t.Fatalf("transaction %d amounts mismatch: %+v", i, got)
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Fatalf("transaction %d timestamp mismatch: %v vs %v", i, got.Timestamp, want.Timestamp)
		}
		if got.Description != want.Description {
			t.Fatalf("transaction %d description mismatch: %q", i, got.Description)
		}
	}
}

func TestMissingFilesAreEmptyDataSet(t *testing.T) {
	store, err := flatfile.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	customers, err := store.LoadCustomers(context.Background())
	if err != nil {
		t.Fatalf("load customers from empty dir: %v", err)
	}
	if len(customers) != 0 {
		t.Fatalf("expected no customers, got %d", len(customers))
	}

	transactions, err := store.LoadTransactions(context.Background())
	if err != nil {
		t.Fatalf("load transactions from empty dir: %v", err)
	}
	if len(transactions) != 0 {
		t.Fatalf("expected no transactions, got %d", len(transactions))
	}
}

func TestMalformedLinesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := flatfile.NewStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if err := store.SaveCustomers(ctx, map[string]*domain.Customer{
		"ACC100": seedCustomer("ACC100", "Ada", 250, true, false),
	}); err != nil {
		t.Fatalf("save customers: %v", err)
	}

	// Append garbage after the valid record.
	path := filepath.Join(dir, "customers.txt")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open data file: %v", err)
	}
	if _, err := f.WriteString("too|few|fields\nAda|hash|ACC9|SAVINGS|not-a-number|true|2026-02-01 09:30:00|0.03|2026-02-01 09:30:00|0|false\n"); err != nil {
		t.Fatalf("append garbage: %v", err)
	}
	f.Close()

	customers, err := store.LoadCustomers(ctx)
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("expected only the valid record, got %d", len(customers))
	}
	if _, ok := customers["ACC100"]; !ok {
		t.Fatal("valid record missing")
	}
}

func TestExportCustomersCSV(t *testing.T) {
	dir := t.TempDir()
	store, err := flatfile.NewStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	path := filepath.Join(dir, "export.csv")
	customers := map[string]*domain.Customer{
		"ACC100": seedCustomer("ACC100", "Ada Lovelace", 250, true, false),
	}
	if err := store.ExportCustomersCSV(context.Background(), path, customers); err != nil {
		t.Fatalf("export csv: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if lines[0] != "Account_Number,Customer_Name,Account_Type,Balance,Status,Created_Date" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("expected 1 data row, got %d", len(lines)-1)
	}
	if lines[1] != `ACC100,"Ada Lovelace",SAVINGS,250.00,Active,2026-02-01` {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}

func TestBackupCopiesDataFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := flatfile.NewStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if err := store.SaveCustomers(ctx, map[string]*domain.Customer{
		"ACC100": seedCustomer("ACC100", "Ada", 250, true, false),
	}); err != nil {
		t.Fatalf("save customers: %v", err)
	}

	backupDir, err := store.Backup(ctx)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}

	original, err := os.ReadFile(filepath.Join(dir, "customers.txt"))
	if err != nil {
		t.Fatalf("read original: %v", err)
	}
	copied, err := os.ReadFile(filepath.Join(backupDir, "customers.txt"))
	if err != nil {
		t.Fatalf("read backup copy: %v", err)
	}
	if string(original) != string(copied) {
		t.Fatal("backup copy differs from original")
	}
}

func TestClearAllRemovesDataFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := flatfile.NewStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if err := store.SaveCustomers(ctx, map[string]*domain.Customer{
		"ACC100": seedCustomer("ACC100", "Ada", 250, true, false),
	}); err != nil {
		t.Fatalf("save customers: %v", err)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "customers.txt")); !os.IsNotExist(err) {
		t.Fatal("customers file still present after clear")
	}

	// Clearing twice is fine.
	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
