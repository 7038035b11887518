package domain

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

var (
	savingsMinimumBalance  = decimal.NewFromInt(50)
	checkingMinimumBalance = decimal.NewFromInt(100)
	savingsAnnualRate      = decimal.RequireFromString("0.03")
	checkingAnnualRate     = decimal.RequireFromString("0.01")
	monthsPerYear          = decimal.NewFromInt(12)
)

// ParseAccountType accepts the historical CURRENT spelling as an alias for
// CHECKING.
func ParseAccountType(raw string) (AccountType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(AccountTypeSavings):
		return AccountTypeSavings, nil
	case string(AccountTypeChecking), "CURRENT":
		return AccountTypeChecking, nil
	default:
		return "", ErrValidation
	}
}

func (t AccountType) MinimumBalance() decimal.Decimal {
	if t == AccountTypeSavings {
		return savingsMinimumBalance
	}
	return checkingMinimumBalance
}

func (t AccountType) AnnualRate() decimal.Decimal {
	if t == AccountTypeSavings {
		return savingsAnnualRate
	}
	return checkingAnnualRate
}

// Account owns its balance-mutation invariants. All mutation goes through
// methods that hold the account mutex; cross-account moves go through
// TransferBetween so both locks are held for the whole debit+credit pair.
type Account struct {
	mu             sync.Mutex
	number         string
	ownerName      string
	accountType    AccountType
	balance        decimal.Decimal
	active         bool
	createdAt      time.Time
	interestRate   decimal.Decimal
	lastInterestAt time.Time
}

func NewAccount(number, ownerName string, accountType AccountType, initialBalance decimal.Decimal) *Account {
	now := time.Now()
	return &Account{
		number:         number,
		ownerName:      ownerName,
		accountType:    accountType,
		balance:        initialBalance,
		active:         true,
		createdAt:      now,
		interestRate:   accountType.AnnualRate(),
		lastInterestAt: now,
	}
}

// RestoreAccount rebuilds an account from persisted state without touching
// the creation defaults.
func RestoreAccount(number, ownerName string, accountType AccountType, balance decimal.Decimal, active bool, createdAt time.Time, interestRate decimal.Decimal, lastInterestAt time.Time) *Account {
	return &Account{
		number:         number,
		ownerName:      ownerName,
		accountType:    accountType,
		balance:        balance,
		active:         active,
		createdAt:      createdAt,
		interestRate:   interestRate,
		lastInterestAt: lastInterestAt,
	}
}

func (a *Account) Number() string       { return a.number }
func (a *Account) OwnerName() string    { return a.ownerName }
func (a *Account) Type() AccountType    { return a.accountType }
func (a *Account) CreatedAt() time.Time { return a.createdAt }

func (a *Account) InterestRate() decimal.Decimal { return a.interestRate }

// Balance is a pure read; interest accrual is an explicit separate step.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *Account) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *Account) SetActive(active bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = active
}

func (a *Account) LastInterestAt() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastInterestAt
}

func (a *Account) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.depositLocked(amount)
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawLocked(amount)
}

// AccrueInterest adds whole-month interest to a SAVINGS balance and advances
// the accrual timestamp. It returns the interest added, zero when no full
// month has elapsed or the account does not bear monthly interest.
func (a *Account) AccrueInterest(now time.Time) decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.accrueLocked(now)
}

func (a *Account) depositLocked(amount decimal.Decimal) error {
	if !a.active {
		return ErrAccountSuspended
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrValidation
	}
	a.balance = a.balance.Add(amount)
	return nil
}

func (a *Account) withdrawLocked(amount decimal.Decimal) error {
	if !a.active {
		return ErrAccountSuspended
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrValidation
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	if a.balance.Sub(amount).LessThan(a.accountType.MinimumBalance()) {
		return ErrBelowMinimumBalance
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

func (a *Account) accrueLocked(now time.Time) decimal.Decimal {
	if a.accountType != AccountTypeSavings {
		return decimal.Zero
	}
	months := wholeMonthsBetween(a.lastInterestAt, now)
	if months < 1 {
		return decimal.Zero
	}
	interest := a.balance.Mul(a.interestRate).Div(monthsPerYear).Mul(decimal.NewFromInt(months)).Round(2)
	a.balance = a.balance.Add(interest)
	a.lastInterestAt = now
	return interest
}

// TransferBetween debits src and credits dst while holding both account
// locks, acquired in account-number order so opposing transfers cannot
// deadlock. The credit is only attempted after the debit has succeeded, so a
// failed transfer leaves both balances untouched.
func TransferBetween(src, dst *Account, amount decimal.Decimal, now time.Time) error {
	if src == nil || dst == nil || src == dst {
		return ErrValidation
	}

	first, second := src, dst
	if dst.number < src.number {
		first, second = dst, src
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if !dst.active {
		return ErrAccountSuspended
	}

	src.accrueLocked(now)
	if err := src.withdrawLocked(amount); err != nil {
		return err
	}

	dst.accrueLocked(now)
	return dst.depositLocked(amount)
}

func wholeMonthsBetween(from, to time.Time) int64 {
	if !to.After(from) {
		return 0
	}
	months := int64((to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()))
	for months > 0 && from.AddDate(0, int(months), 0).After(to) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
