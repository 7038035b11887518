package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/corebank/ledger/internal/adapter/repository/repo_interfaces"
	"github.com/corebank/ledger/internal/commons"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/logger"
	"github.com/corebank/ledger/internal/usecase/models"
)

// LedgerService owns the registry of customers and the append-only
// transaction log. Every successful mutation is flushed to the store before
// the call returns; a failed flush is reported but never rolls back the
// in-memory state.
type LedgerService struct {
	store      repo_interfaces.LedgerStore
	bcryptCost int

	mu           sync.RWMutex
	customers    map[string]*domain.Customer
	transactions []domain.Transaction
}

func NewLedgerService(store repo_interfaces.LedgerStore, bcryptCost int) *LedgerService {
	return &LedgerService{
		store:      store,
		bcryptCost: bcryptCost,
		customers:  make(map[string]*domain.Customer),
	}
}

// Load replaces the in-memory state with the persisted one. Both data files
// are read concurrently.
func (s *LedgerService) Load(ctx context.Context) error {
	var (
		customers    map[string]*domain.Customer
		transactions []domain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = s.store.LoadCustomers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.store.LoadTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = customers
	s.transactions = transactions

	logger.Info("ledger loaded", logger.Fields{
		"customers":    len(customers),
		"transactions": len(transactions),
	})
	return nil
}

func (s *LedgerService) Register(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.RegisterCustomerResponse], error) {
	logger.Info("ledger service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service register validation failed", err, nil)
		return commons.ErrorResponse[models.RegisterCustomerResponse]("validation failed", err.Error()), err
	}

	accountType, _ := domain.ParseAccountType(req.AccountType)
	name := strings.TrimSpace(req.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	accountNumber, err := s.nextAccountNumberLocked()
	if err != nil {
		logger.Error("ledger service register account number generation failed", err, nil)
		return commons.ErrorResponse[models.RegisterCustomerResponse]("failed to register customer", "could not generate a unique account number"), err
	}

	account := domain.NewAccount(accountNumber, name, accountType, req.InitialDeposit)
	customer, err := domain.NewCustomer(name, strings.TrimSpace(req.Secret), account, s.bcryptCost)
	if err != nil {
		logger.Error("ledger service register hash credential failed", err, nil)
		return commons.ErrorResponse[models.RegisterCustomerResponse]("failed to register customer", "could not hash the credential"), err
	}

	s.customers[accountNumber] = customer
	if req.InitialDeposit.IsPositive() {
		s.appendTransactionLocked(account, domain.TransactionTypeDeposit, req.InitialDeposit, "Initial deposit")
	}

	persistErr := s.persistLocked(ctx)

	response := models.RegisterCustomerResponse{
		AccountNumber: accountNumber,
		Name:          name,
		AccountType:   string(accountType),
		Balance:       account.Balance().StringFixed(2),
	}

	logger.Info("ledger service register success", logger.Fields{
		"accountNumber": accountNumber,
		"accountType":   string(accountType),
	})

	return commons.SuccessResponse("customer registered successfully"+persistNotice(persistErr), response), nil
}

func (s *LedgerService) Authenticate(ctx context.Context, req models.AuthenticateRequest) (commons.Response[models.AccountInfoResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountInfoResponse]("validation failed", err.Error()), err
	}

	s.mu.RLock()
	customer, err := s.authenticateLocked(req.AccountNumber, req.Secret)
	s.mu.RUnlock()
	if err != nil {
		logger.Info("ledger service authenticate failed", logger.Fields{
			"accountNumber": strings.TrimSpace(req.AccountNumber),
			"cause":         err.Error(),
		})
		return authErrorResponse[models.AccountInfoResponse](err)
	}

	return commons.SuccessResponse("login successful", customerInfo(customer)), nil
}

// CheckBalance accrues pending interest before reading, so the returned
// balance is current. The accrual itself is persisted when it changed state.
func (s *LedgerService) CheckBalance(ctx context.Context, req models.AuthenticateRequest) (commons.Response[models.BalanceResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.BalanceResponse]("validation failed", err.Error()), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, err := s.authenticateLocked(req.AccountNumber, req.Secret)
	if err != nil {
		return authErrorResponse[models.BalanceResponse](err)
	}

	account := customer.Account()
	interest := account.AccrueInterest(time.Now())

	var persistErr error
	if interest.IsPositive() {
		persistErr = s.persistLocked(ctx)
	}

	response := models.BalanceResponse{
		AccountNumber:   account.Number(),
		Balance:         account.Balance().StringFixed(2),
		InterestAccrued: interest.StringFixed(2),
	}

	return commons.SuccessResponse("balance fetched successfully"+persistNotice(persistErr), response), nil
}

func (s *LedgerService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("ledger service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service deposit validation failed", err, nil)
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, err := s.authenticateLocked(req.AccountNumber, req.Secret)
	if err != nil {
		return authErrorResponse[models.DepositResponse](err)
	}

	account := customer.Account()
	account.AccrueInterest(time.Now())

	if err := account.Deposit(req.Amount); err != nil {
		logger.Error("ledger service deposit failed", err, logger.Fields{
			"accountNumber": account.Number(),
			"amount":        req.Amount.String(),
		})
		return mutationErrorResponse[models.DepositResponse]("failed to deposit", err, account.Type())
	}

	s.appendTransactionLocked(account, domain.TransactionTypeDeposit, req.Amount, "Cash deposit")
	persistErr := s.persistLocked(ctx)

	response := models.DepositResponse{
		AccountNumber: account.Number(),
		Amount:        req.Amount.StringFixed(2),
		Balance:       account.Balance().StringFixed(2),
	}

	logger.Info("ledger service deposit success", logger.Fields{
		"accountNumber": response.AccountNumber,
		"amount":        response.Amount,
	})

	return commons.SuccessResponse("deposit successful"+persistNotice(persistErr), response), nil
}

func (s *LedgerService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.WithdrawResponse], error) {
	logger.Info("ledger service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service withdraw validation failed", err, nil)
		return commons.ErrorResponse[models.WithdrawResponse]("validation failed", err.Error()), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, err := s.authenticateLocked(req.AccountNumber, req.Secret)
	if err != nil {
		return authErrorResponse[models.WithdrawResponse](err)
	}

	account := customer.Account()
	account.AccrueInterest(time.Now())

	if err := account.Withdraw(req.Amount); err != nil {
		logger.Error("ledger service withdraw failed", err, logger.Fields{
			"accountNumber": account.Number(),
			"amount":        req.Amount.String(),
		})
		return mutationErrorResponse[models.WithdrawResponse]("failed to withdraw", err, account.Type())
	}

	s.appendTransactionLocked(account, domain.TransactionTypeWithdrawal, req.Amount, "Cash withdrawal")
	persistErr := s.persistLocked(ctx)

	response := models.WithdrawResponse{
		AccountNumber: account.Number(),
		Amount:        req.Amount.StringFixed(2),
		Balance:       account.Balance().StringFixed(2),
	}

	logger.Info("ledger service withdraw success", logger.Fields{
		"accountNumber": response.AccountNumber,
		"amount":        response.Amount,
	})

	return commons.SuccessResponse("withdrawal successful"+persistNotice(persistErr), response), nil
}

// Transfer authenticates the source only; the destination is a deposit
// target and just has to exist and be active. Exactly two transactions are
// appended on success, none on failure.
func (s *LedgerService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("ledger service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source, err := s.authenticateLocked(req.FromAccount, req.Secret)
	if err != nil {
		return authErrorResponse[models.TransferResponse](err)
	}

	destination, ok := s.customers[strings.TrimSpace(req.ToAccount)]
	if !ok {
		err := domain.ErrRecordNotFound
		return commons.ErrorResponse[models.TransferResponse]("failed to transfer", "destination account not found"), err
	}

	srcAccount := source.Account()
	dstAccount := destination.Account()

	if err := domain.TransferBetween(srcAccount, dstAccount, req.Amount, time.Now()); err != nil {
		logger.Error("ledger service transfer failed", err, logger.Fields{
			"fromAccount": srcAccount.Number(),
			"toAccount":   dstAccount.Number(),
			"amount":      req.Amount.String(),
		})
		if errors.Is(err, domain.ErrAccountSuspended) && !dstAccount.Active() {
			return commons.ErrorResponse[models.TransferResponse]("failed to transfer", "destination account is suspended"), err
		}
		return mutationErrorResponse[models.TransferResponse]("failed to transfer", err, srcAccount.Type())
	}

	s.appendTransactionLocked(srcAccount, domain.TransactionTypeTransferOut, req.Amount, "Transfer to "+dstAccount.Number())
	s.appendTransactionLocked(dstAccount, domain.TransactionTypeTransferIn, req.Amount, "Transfer from "+srcAccount.Number())
	persistErr := s.persistLocked(ctx)

	response := models.TransferResponse{
		FromAccount: srcAccount.Number(),
		ToAccount:   dstAccount.Number(),
		Amount:      req.Amount.StringFixed(2),
		FromBalance: srcAccount.Balance().StringFixed(2),
	}

	logger.Info("ledger service transfer success", logger.Fields{
		"fromAccount": response.FromAccount,
		"toAccount":   response.ToAccount,
		"amount":      response.Amount,
	})

	return commons.SuccessResponse("transfer successful"+persistNotice(persistErr), response), nil
}

// authenticateLocked expects at least the registry read lock to be held.
func (s *LedgerService) authenticateLocked(accountNumber, secret string) (*domain.Customer, error) {
	customer, ok := s.customers[strings.TrimSpace(accountNumber)]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	if !customer.ValidateCredential(strings.TrimSpace(secret)) {
		if customer.Locked() {
			return nil, domain.ErrCustomerLocked
		}
		return nil, domain.ErrInvalidCredential
	}

	if !customer.Account().Active() {
		return nil, domain.ErrAccountSuspended
	}

	return customer, nil
}

func (s *LedgerService) appendTransactionLocked(account *domain.Account, txType domain.TransactionType, amount decimal.Decimal, description string) {
	s.transactions = append(s.transactions, domain.Transaction{
		ID:            newTransactionID(),
		AccountNumber: account.Number(),
		Type:          txType,
		Amount:        amount,
		Timestamp:     time.Now(),
		Description:   description,
		BalanceAfter:  account.Balance(),
	})
}

func (s *LedgerService) persistLocked(ctx context.Context) error {
	if err := s.store.SaveCustomers(ctx, s.customers); err != nil {
		logger.Error("ledger service persist customers failed", err, nil)
		return err
	}
	if err := s.store.SaveTransactions(ctx, s.transactions); err != nil {
		logger.Error("ledger service persist transactions failed", err, nil)
		return err
	}
	return nil
}

func (s *LedgerService) nextAccountNumberLocked() (string, error) {
	number := fmt.Sprintf("ACC%d", time.Now().UnixMilli())
	if _, taken := s.customers[number]; !taken {
		return number, nil
	}

	for i := 0; i < 5; i++ {
		number = fmt.Sprintf("ACC%d", time.Now().UnixNano())
		if _, taken := s.customers[number]; !taken {
			return number, nil
		}
	}
	return "", domain.ErrDuplicateAccount
}

func newTransactionID() string {
	return fmt.Sprintf("TXN%d-%s", time.Now().UnixMilli(), strings.SplitN(uuid.NewString(), "-", 2)[0])
}

func customerInfo(customer *domain.Customer) models.AccountInfoResponse {
	account := customer.Account()
	status := "Active"
	if !account.Active() {
		status = "Suspended"
	}

	return models.AccountInfoResponse{
		AccountNumber: account.Number(),
		Name:          customer.Name(),
		AccountType:   string(account.Type()),
		Balance:       account.Balance().StringFixed(2),
		Status:        status,
		CreatedAt:     account.CreatedAt().Format("2006-01-02 15:04:05"),
	}
}

func authErrorResponse[T any](err error) (commons.Response[T], error) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return commons.ErrorResponse[T]("account not found"), err
	case errors.Is(err, domain.ErrCustomerLocked):
		return commons.ErrorResponse[T]("login failed", "customer is locked after too many failed attempts, contact admin"), err
	case errors.Is(err, domain.ErrAccountSuspended):
		return commons.ErrorResponse[T]("login failed", "account is suspended, contact admin"), err
	default:
		return commons.ErrorResponse[T]("login failed", "invalid account number or secret"), err
	}
}

func mutationErrorResponse[T any](message string, err error, accountType domain.AccountType) (commons.Response[T], error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return commons.ErrorResponse[T](message, "insufficient funds"), err
	case errors.Is(err, domain.ErrBelowMinimumBalance):
		return commons.ErrorResponse[T](message, fmt.Sprintf("balance cannot fall below the %s minimum of %s", accountType, accountType.MinimumBalance().StringFixed(2))), err
	case errors.Is(err, domain.ErrAccountSuspended):
		return commons.ErrorResponse[T](message, "account is suspended"), err
	default:
		return commons.ErrorResponse[T](message, "amount must be positive"), err
	}
}

func persistNotice(err error) string {
	if err == nil {
		return ""
	}
	return " (warning: changes could not be saved to disk)"
}
