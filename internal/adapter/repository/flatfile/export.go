package flatfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/corebank/ledger/internal/domain"
)

const csvHeader = "Account_Number,Customer_Name,Account_Type,Balance,Status,Created_Date"

// ExportCustomersCSV writes the account listing to path. The customer name
// is always quoted so names with commas survive.
func (s *Store) ExportCustomersCSV(_ context.Context, path string, customers map[string]*domain.Customer) error {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, customer := range customers {
		account := customer.Account()
		status := "Active"
		if !account.Active() {
			status = "Suspended"
		}

		b.WriteString(strings.Join([]string{
			account.Number(),
			`"` + strings.ReplaceAll(customer.Name(), `"`, `""`) + `"`,
			string(account.Type()),
			account.Balance().StringFixed(2),
			status,
			account.CreatedAt().Format("2006-01-02"),
		}, ","))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: export csv: %s", domain.ErrPersistence, err)
	}
	return nil
}
