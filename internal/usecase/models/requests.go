package models

import (
	"errors"
	"strings"

	"github.com/corebank/ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type RegisterCustomerRequest struct {
	Name           string
	Secret         string
	AccountType    string
	InitialDeposit decimal.Decimal
}

func (r RegisterCustomerRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Secret) == "" {
		errs = append(errs, "secret is required")
	}
	if _, err := domain.ParseAccountType(r.AccountType); err != nil {
		errs = append(errs, "accountType must be SAVINGS or CHECKING")
	}
	if r.InitialDeposit.IsNegative() {
		errs = append(errs, "initialDeposit cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AuthenticateRequest struct {
	AccountNumber string
	Secret        string
}

func (r AuthenticateRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}
	if strings.TrimSpace(r.Secret) == "" {
		errs = append(errs, "secret is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type DepositRequest struct {
	AccountNumber string
	Secret        string
	Amount        decimal.Decimal
}

func (r DepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}
	if strings.TrimSpace(r.Secret) == "" {
		errs = append(errs, "secret is required")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be positive")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type WithdrawRequest struct {
	AccountNumber string
	Secret        string
	Amount        decimal.Decimal
}

func (r WithdrawRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}
	if strings.TrimSpace(r.Secret) == "" {
		errs = append(errs, "secret is required")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be positive")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferRequest struct {
	FromAccount string
	Secret      string
	ToAccount   string
	Amount      decimal.Decimal
}

func (r TransferRequest) Validate() error {
	var errs []string

	from := strings.TrimSpace(r.FromAccount)
	to := strings.TrimSpace(r.ToAccount)

	if from == "" {
		errs = append(errs, "fromAccount is required")
	}
	if strings.TrimSpace(r.Secret) == "" {
		errs = append(errs, "secret is required")
	}
	if to == "" {
		errs = append(errs, "toAccount is required")
	}
	if from != "" && from == to {
		errs = append(errs, "cannot transfer to the same account")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be positive")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
