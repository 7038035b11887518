package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/corebank/ledger/internal/domain"
)

func newCustomer(t *testing.T, secret string) *domain.Customer {
	t.Helper()
	account := domain.NewAccount("ACC1", "Ada", domain.AccountTypeSavings, decimal.NewFromInt(100))
	customer, err := domain.NewCustomer("Ada", secret, account, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func TestCredentialHashedAtRegistration(t *testing.T) {
	customer := newCustomer(t, "1234")

	if customer.CredentialHash() == "1234" {
		t.Fatal("credential stored in cleartext")
	}
	if !customer.ValidateCredential("1234") {
		t.Fatal("correct secret rejected")
	}
}

func TestLockoutAfterThreeFailures(t *testing.T) {
	customer := newCustomer(t, "1234")

	for i := 0; i < domain.MaxFailedAttempts; i++ {
		if customer.ValidateCredential("0000") {
			t.Fatal("wrong secret accepted")
		}
	}
	if !customer.Locked() {
		t.Fatal("customer not locked after three failures")
	}

	// Even the correct secret fails while locked.
	if customer.ValidateCredential("1234") {
		t.Fatal("locked customer validated successfully")
	}
	if customer.FailedAttempts() != domain.MaxFailedAttempts {
		t.Fatalf("locked validation consumed an attempt: %d", customer.FailedAttempts())
	}

	customer.Unlock()
	if customer.Locked() {
		t.Fatal("unlock did not clear the lock flag")
	}
	if !customer.ValidateCredential("1234") {
		t.Fatal("correct secret rejected after unlock")
	}
	if customer.FailedAttempts() != 0 {
		t.Fatalf("expected counter reset after success, got %d", customer.FailedAttempts())
	}
}

func TestSuccessResetsFailedAttempts(t *testing.T) {
	customer := newCustomer(t, "1234")

	customer.ValidateCredential("0000")
	customer.ValidateCredential("0000")
	if customer.FailedAttempts() != 2 {
		t.Fatalf("expected 2 failed attempts, got %d", customer.FailedAttempts())
	}

	if !customer.ValidateCredential("1234") {
		t.Fatal("correct secret rejected before lockout")
	}
	if customer.FailedAttempts() != 0 {
		t.Fatalf("expected counter reset, got %d", customer.FailedAttempts())
	}
}
