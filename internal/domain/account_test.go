package domain_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/domain"
)

func savingsAccount(t *testing.T, balance int64) *domain.Account {
	t.Helper()
	return domain.NewAccount("ACC1", "Ada", domain.AccountTypeSavings, decimal.NewFromInt(balance))
}

func TestParseAccountType(t *testing.T) {
	if _, err := domain.ParseAccountType("savings"); err != nil {
		t.Fatalf("expected savings to parse, got %v", err)
	}

	parsed, err := domain.ParseAccountType("CURRENT")
	if err != nil {
		t.Fatalf("expected CURRENT alias to parse, got %v", err)
	}
	if parsed != domain.AccountTypeChecking {
		t.Fatalf("expected CURRENT to map to CHECKING, got %s", parsed)
	}

	if _, err := domain.ParseAccountType("PREMIUM"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
}

func TestWithdrawRejectsBelowMinimum(t *testing.T) {
	account := savingsAccount(t, 60)

	if err := account.Withdraw(decimal.NewFromInt(20)); !errors.Is(err, domain.ErrBelowMinimumBalance) {
		t.Fatalf("expected below-minimum error, got %v", err)
	}
	if got := account.Balance().StringFixed(2); got != "60.00" {
		t.Fatalf("balance changed after rejected withdrawal: %s", got)
	}

	if err := account.Withdraw(decimal.NewFromInt(5)); err != nil {
		t.Fatalf("expected withdrawal above minimum to succeed, got %v", err)
	}
	if got := account.Balance().StringFixed(2); got != "55.00" {
		t.Fatalf("expected balance 55.00, got %s", got)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	account := savingsAccount(t, 100)

	if err := account.Withdraw(decimal.NewFromInt(200)); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}
	if got := account.Balance().StringFixed(2); got != "100.00" {
		t.Fatalf("balance changed after rejected withdrawal: %s", got)
	}
}

func TestDepositValidation(t *testing.T) {
	account := savingsAccount(t, 100)

	if err := account.Deposit(decimal.NewFromInt(-5)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}

	account.SetActive(false)
	if err := account.Deposit(decimal.NewFromInt(10)); !errors.Is(err, domain.ErrAccountSuspended) {
		t.Fatalf("expected suspended error, got %v", err)
	}
	if got := account.Balance().StringFixed(2); got != "100.00" {
		t.Fatalf("balance changed after rejected deposits: %s", got)
	}
}

func TestAccrueInterestTwoMonths(t *testing.T) {
	lastInterest := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)

	account := domain.RestoreAccount("ACC1", "Ada", domain.AccountTypeSavings,
		decimal.NewFromInt(1000), true, lastInterest,
		domain.AccountTypeSavings.AnnualRate(), lastInterest)

	interest := account.AccrueInterest(now)
	if got := interest.StringFixed(2); got != "5.00" {
		t.Fatalf("expected 5.00 interest for two months, got %s", got)
	}
	if got := account.Balance().StringFixed(2); got != "1005.00" {
		t.Fatalf("expected balance 1005.00, got %s", got)
	}
	if !account.LastInterestAt().Equal(now) {
		t.Fatalf("expected accrual timestamp to advance to %v, got %v", now, account.LastInterestAt())
	}
}

func TestAccrueInterestUnderOneMonth(t *testing.T) {
	lastInterest := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)
	now := lastInterest.AddDate(0, 0, 20)

	account := domain.RestoreAccount("ACC1", "Ada", domain.AccountTypeSavings,
		decimal.NewFromInt(1000), true, lastInterest,
		domain.AccountTypeSavings.AnnualRate(), lastInterest)

	if interest := account.AccrueInterest(now); !interest.IsZero() {
		t.Fatalf("expected no interest under one month, got %s", interest)
	}
	if !account.LastInterestAt().Equal(lastInterest) {
		t.Fatal("accrual timestamp moved without accrual")
	}
}

func TestCheckingNeverAccrues(t *testing.T) {
	lastInterest := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)

	account := domain.RestoreAccount("ACC1", "Ada", domain.AccountTypeChecking,
		decimal.NewFromInt(1000), true, lastInterest,
		domain.AccountTypeChecking.AnnualRate(), lastInterest)

	if interest := account.AccrueInterest(now); !interest.IsZero() {
		t.Fatalf("checking account accrued interest: %s", interest)
	}
	if got := account.Balance().StringFixed(2); got != "1000.00" {
		t.Fatalf("checking balance changed: %s", got)
	}
}

func TestTransferBetween(t *testing.T) {
	src := domain.NewAccount("ACC1", "Ada", domain.AccountTypeSavings, decimal.NewFromInt(200))
	dst := domain.NewAccount("ACC2", "Ben", domain.AccountTypeChecking, decimal.NewFromInt(150))

	if err := domain.TransferBetween(src, dst, decimal.NewFromInt(60), time.Now()); err != nil {
		t.Fatalf("expected transfer to succeed, got %v", err)
	}
	if got := src.Balance().StringFixed(2); got != "140.00" {
		t.Fatalf("expected source balance 140.00, got %s", got)
	}
	if got := dst.Balance().StringFixed(2); got != "210.00" {
		t.Fatalf("expected destination balance 210.00, got %s", got)
	}
}

func TestTransferBetweenFailureLeavesBalances(t *testing.T) {
	src := domain.NewAccount("ACC1", "Ada", domain.AccountTypeSavings, decimal.NewFromInt(200))
	dst := domain.NewAccount("ACC2", "Ben", domain.AccountTypeChecking, decimal.NewFromInt(150))

	if err := domain.TransferBetween(src, dst, decimal.NewFromInt(500), time.Now()); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if got := src.Balance().StringFixed(2); got != "200.00" {
		t.Fatalf("source balance changed after failed transfer: %s", got)
	}
	if got := dst.Balance().StringFixed(2); got != "150.00" {
		t.Fatalf("destination balance changed after failed transfer: %s", got)
	}
}

func TestTransferBetweenSuspendedDestination(t *testing.T) {
	src := domain.NewAccount("ACC1", "Ada", domain.AccountTypeSavings, decimal.NewFromInt(200))
	dst := domain.NewAccount("ACC2", "Ben", domain.AccountTypeChecking, decimal.NewFromInt(150))
	dst.SetActive(false)

	if err := domain.TransferBetween(src, dst, decimal.NewFromInt(60), time.Now()); !errors.Is(err, domain.ErrAccountSuspended) {
		t.Fatalf("expected suspended error, got %v", err)
	}
	if got := src.Balance().StringFixed(2); got != "200.00" {
		t.Fatalf("source balance changed: %s", got)
	}
}

func TestConcurrentOpposingTransfers(t *testing.T) {
	a := domain.NewAccount("ACC1", "Ada", domain.AccountTypeSavings, decimal.NewFromInt(1000))
	b := domain.NewAccount("ACC2", "Ben", domain.AccountTypeSavings, decimal.NewFromInt(1000))
	one := decimal.NewFromInt(1)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		aToB := i%2 == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				if aToB {
					_ = domain.TransferBetween(a, b, one, time.Now())
				} else {
					_ = domain.TransferBetween(b, a, one, time.Now())
				}
			}
		}()
	}
	wg.Wait()

	if total := a.Balance().Add(b.Balance()); !total.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("total balance not conserved: %s", total)
	}
}

func TestConcurrentDepositsAndWithdrawals(t *testing.T) {
	account := savingsAccount(t, 1000)
	one := decimal.NewFromInt(1)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		withdraw := i%2 == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if withdraw {
					if err := account.Withdraw(one); err != nil {
						t.Errorf("withdraw failed: %v", err)
						return
					}
				} else if err := account.Deposit(one); err != nil {
					t.Errorf("deposit failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := account.Balance().StringFixed(2); got != "1000.00" {
		t.Fatalf("expected balance back at 1000.00, got %s", got)
	}
}
