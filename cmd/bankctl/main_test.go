package main

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/corebank/ledger/internal/adapter/repository/memory"
	"github.com/corebank/ledger/internal/usecase/services"
)

func newShell(t *testing.T, input string) *shell {
	t.Helper()
	svc := services.NewLedgerService(memory.NewLedgerStore(), bcrypt.MinCost)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load empty ledger: %v", err)
	}
	return &shell{
		svc:           svc,
		adminPassword: "admin123",
		in:            bufio.NewScanner(strings.NewReader(input)),
	}
}

func TestReadIntStopsWhenInputEnds(t *testing.T) {
	sh := newShell(t, "abc\n")

	if _, ok := sh.readInt("option: "); ok {
		t.Fatal("expected readInt to report exhausted input")
	}
}

func TestReadAmountStopsWhenInputEnds(t *testing.T) {
	sh := newShell(t, "not-a-number\n")

	if _, ok := sh.readAmount("amount: "); ok {
		t.Fatal("expected readAmount to report exhausted input")
	}
}

func TestReadDateStopsWhenInputEnds(t *testing.T) {
	sh := newShell(t, "yesterday\n")

	if _, ok := sh.readDate("date: "); ok {
		t.Fatal("expected readDate to report exhausted input")
	}
}

func TestRunExitsWhenInputEnds(t *testing.T) {
	sh := newShell(t, "")

	// Returns instead of re-prompting a closed stdin forever.
	sh.run(context.Background())
}

func TestMenusExitWhenInputEnds(t *testing.T) {
	// "2" enters the customer interface, then input ends; both loops
	// must unwind back out of run.
	sh := newShell(t, "2\n")
	sh.run(context.Background())
}

func TestAdminRegisterAllowsSmallOpeningDeposit(t *testing.T) {
	sh := newShell(t, "Ada\n1234\nSAVINGS\n10\n")

	sh.registerCustomer(context.Background(), false)

	customers := sh.svc.ListCustomers()
	if len(customers) != 1 {
		t.Fatalf("expected one customer, got %d", len(customers))
	}
	if customers[0].Balance != "10.00" {
		t.Fatalf("expected opening balance 10.00, got %s", customers[0].Balance)
	}
}

func TestCustomerRegisterEnforcesMinimumDeposit(t *testing.T) {
	// First amount is below the floor and must be re-prompted.
	sh := newShell(t, "Ada\n1234\nSAVINGS\n10\n75\n")

	sh.registerCustomer(context.Background(), true)

	customers := sh.svc.ListCustomers()
	if len(customers) != 1 {
		t.Fatalf("expected one customer, got %d", len(customers))
	}
	if customers[0].Balance != "75.00" {
		t.Fatalf("expected opening balance 75.00, got %s", customers[0].Balance)
	}
}

func TestCustomerRegisterAbortsWhenInputEnds(t *testing.T) {
	// Input ends while the deposit floor keeps rejecting the amount.
	sh := newShell(t, "Ada\n1234\nSAVINGS\n10\n")

	sh.registerCustomer(context.Background(), true)

	if got := len(sh.svc.ListCustomers()); got != 0 {
		t.Fatalf("expected no customer registered, got %d", got)
	}
}
