package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/logger"
)

const (
	customersFileName    = "customers.txt"
	transactionsFileName = "transactions.txt"
	backupDirLayout      = "backup_20060102_150405"
)

// Store persists the ledger as two pipe-delimited text files under dir.
type Store struct {
	dir              string
	customersPath    string
	transactionsPath string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %s", domain.ErrPersistence, err)
	}

	return &Store{
		dir:              dir,
		customersPath:    filepath.Join(dir, customersFileName),
		transactionsPath: filepath.Join(dir, transactionsFileName),
	}, nil
}

func (s *Store) LoadCustomers(_ context.Context) (map[string]*domain.Customer, error) {
	customers := make(map[string]*domain.Customer)

	err := s.readLines(s.customersPath, func(line string) {
		customer, err := decodeCustomer(line)
		if err != nil {
			logger.Warn("skipping malformed customer record", logger.Fields{
				"file":  s.customersPath,
				"cause": err.Error(),
			})
			return
		}
		customers[customer.Account().Number()] = customer
	})
	if err != nil {
		return nil, err
	}

	return customers, nil
}

func (s *Store) LoadTransactions(_ context.Context) ([]domain.Transaction, error) {
	var transactions []domain.Transaction

	err := s.readLines(s.transactionsPath, func(line string) {
		tx, err := decodeTransaction(line)
		if err != nil {
			logger.Warn("skipping malformed transaction record", logger.Fields{
				"file":  s.transactionsPath,
				"cause": err.Error(),
			})
			return
		}
		transactions = append(transactions, tx)
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (s *Store) SaveCustomers(_ context.Context, customers map[string]*domain.Customer) error {
	var b strings.Builder
	for _, customer := range customers {
		b.WriteString(encodeCustomer(customer))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(s.customersPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: save customers: %s", domain.ErrPersistence, err)
	}
	return nil
}

func (s *Store) SaveTransactions(_ context.Context, transactions []domain.Transaction) error {
	var b strings.Builder
	for _, tx := range transactions {
		b.WriteString(encodeTransaction(tx))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(s.transactionsPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: save transactions: %s", domain.ErrPersistence, err)
	}
	return nil
}

// Backup copies both data files into a timestamped sibling directory and
// returns its path.
func (s *Store) Backup(_ context.Context) (string, error) {
	backupDir := filepath.Join(s.dir, time.Now().Format(backupDirLayout))
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create backup directory: %s", domain.ErrPersistence, err)
	}

	for _, name := range []string{customersFileName, transactionsFileName} {
		if err := copyFile(filepath.Join(s.dir, name), filepath.Join(backupDir, name)); err != nil {
			return "", fmt.Errorf("%w: backup %s: %s", domain.ErrPersistence, name, err)
		}
	}

	return backupDir, nil
}

func (s *Store) ClearAll(_ context.Context) error {
	for _, path := range []string{s.customersPath, s.transactionsPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: clear data file: %s", domain.ErrPersistence, err)
		}
	}
	return nil
}

// readLines feeds every non-empty line to handle. A missing file is an empty
// data set, not an error.
func (s *Store) readLines(path string, handle func(line string)) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: open %s: %s", domain.ErrPersistence, path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		handle(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %s", domain.ErrPersistence, path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
