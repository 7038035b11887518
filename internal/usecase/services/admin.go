package services

import (
	"context"
	"strings"

	"github.com/corebank/ledger/internal/commons"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/logger"
	"github.com/corebank/ledger/internal/usecase/models"
)

// Admin-only registry mutations. Each one flushes to the store.

func (s *LedgerService) ToggleStatus(ctx context.Context, accountNumber string) (commons.Response[models.ToggleStatusResponse], error) {
	accountNumber = strings.TrimSpace(accountNumber)

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[accountNumber]
	if !ok {
		return commons.ErrorResponse[models.ToggleStatusResponse]("account not found"), domain.ErrRecordNotFound
	}

	account := customer.Account()
	account.SetActive(!account.Active())
	persistErr := s.persistLocked(ctx)

	logger.Info("ledger service account status toggled", logger.Fields{
		"accountNumber": accountNumber,
		"active":        account.Active(),
	})

	return commons.SuccessResponse("account status updated"+persistNotice(persistErr), models.ToggleStatusResponse{
		AccountNumber: accountNumber,
		Active:        account.Active(),
	}), nil
}

// DeleteCustomer removes the customer and its account from the registry.
// The account's transaction history is retained.
func (s *LedgerService) DeleteCustomer(ctx context.Context, accountNumber string) (commons.Response[models.DeleteCustomerResponse], error) {
	accountNumber = strings.TrimSpace(accountNumber)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[accountNumber]; !ok {
		return commons.ErrorResponse[models.DeleteCustomerResponse]("account not found"), domain.ErrRecordNotFound
	}

	delete(s.customers, accountNumber)
	persistErr := s.persistLocked(ctx)

	logger.Info("ledger service customer deleted", logger.Fields{
		"accountNumber": accountNumber,
	})

	return commons.SuccessResponse("customer deleted"+persistNotice(persistErr), models.DeleteCustomerResponse{
		AccountNumber: accountNumber,
	}), nil
}

func (s *LedgerService) UnlockCustomer(ctx context.Context, accountNumber string) (commons.Response[models.UnlockCustomerResponse], error) {
	accountNumber = strings.TrimSpace(accountNumber)

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[accountNumber]
	if !ok {
		return commons.ErrorResponse[models.UnlockCustomerResponse]("account not found"), domain.ErrRecordNotFound
	}

	customer.Unlock()
	persistErr := s.persistLocked(ctx)

	logger.Info("ledger service customer unlocked", logger.Fields{
		"accountNumber": accountNumber,
	})

	return commons.SuccessResponse("customer unlocked"+persistNotice(persistErr), models.UnlockCustomerResponse{
		AccountNumber: accountNumber,
	}), nil
}

func (s *LedgerService) BackupData(ctx context.Context) (commons.Response[models.BackupResponse], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.store.Backup(ctx)
	if err != nil {
		logger.Error("ledger service backup failed", err, nil)
		return commons.ErrorResponse[models.BackupResponse]("failed to back up data", "could not copy the data files"), err
	}

	return commons.SuccessResponse("data backed up", models.BackupResponse{Path: path}), nil
}

func (s *LedgerService) ExportCustomersCSV(ctx context.Context, path string) (commons.Response[models.ExportResponse], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.store.ExportCustomersCSV(ctx, path, s.customers); err != nil {
		logger.Error("ledger service csv export failed", err, logger.Fields{
			"path": path,
		})
		return commons.ErrorResponse[models.ExportResponse]("failed to export", "could not write the CSV file"), err
	}

	return commons.SuccessResponse("customers exported", models.ExportResponse{
		Path:      path,
		Customers: len(s.customers),
	}), nil
}

// ClearAllData wipes both the in-memory state and the data files.
func (s *LedgerService) ClearAllData(ctx context.Context) (commons.Response[models.DeleteCustomerResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearAll(ctx); err != nil {
		logger.Error("ledger service clear data failed", err, nil)
		return commons.ErrorResponse[models.DeleteCustomerResponse]("failed to clear data", "could not remove the data files"), err
	}

	s.customers = make(map[string]*domain.Customer)
	s.transactions = nil

	logger.Warn("ledger service all data cleared", nil)
	return commons.SuccessResponse("all data cleared", models.DeleteCustomerResponse{}), nil
}
