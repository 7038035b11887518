package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/adapter/repository/flatfile"
	"github.com/corebank/ledger/internal/config"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/usecase/models"
	"github.com/corebank/ledger/internal/usecase/service_interfaces"
	"github.com/corebank/ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := flatfile.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("open data directory: %v", err)
	}

	svc := services.NewLedgerService(store, cfg.BcryptCost)

	ctx := context.Background()
	if err := svc.Load(ctx); err != nil {
		log.Fatalf("load ledger: %v", err)
	}

	sh := &shell{
		svc:           svc,
		adminPassword: cfg.AdminPassword,
		in:            bufio.NewScanner(os.Stdin),
	}
	sh.run(ctx)
}

type shell struct {
	svc           service_interfaces.LedgerService
	adminPassword string
	in            *bufio.Scanner
}

func (sh *shell) run(ctx context.Context) {
	rule := strings.Repeat("=", 50)
	fmt.Println(rule)
	fmt.Println("            CUSTOMER ACCOUNT LEDGER")
	fmt.Println(rule)

	for {
		fmt.Println("\n1. Admin Login")
		fmt.Println("2. Customer Interface")
		fmt.Println("3. Exit")

		choice, ok := sh.readInt("Choose an option: ")
		if !ok {
			fmt.Println("Goodbye!")
			return
		}
		switch choice {
		case 1:
			sh.adminLogin(ctx)
		case 2:
			sh.customerInterface(ctx)
		case 3:
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid option! Please try again.")
		}
	}
}

func (sh *shell) adminLogin(ctx context.Context) {
	password, ok := sh.readLineBack("Enter admin password (or 'back' to return): ")
	if !ok {
		return
	}
	if password != sh.adminPassword {
		fmt.Println("Invalid admin password!")
		return
	}
	sh.adminMenu(ctx)
}

func (sh *shell) adminMenu(ctx context.Context) {
	for {
		fmt.Println("\n=== ADMIN MENU ===")
		fmt.Println("1. View All Customers")
		fmt.Println("2. View Customers by Account Type")
		fmt.Println("3. View Customers by Status")
		fmt.Println("4. View All Transactions")
		fmt.Println("5. View Transactions by Type")
		fmt.Println("6. View Transactions by Date Range")
		fmt.Println("7. Create Customer Account")
		fmt.Println("8. Delete Customer Account")
		fmt.Println("9. Toggle Account Status")
		fmt.Println("10. View Customer Transaction History")
		fmt.Println("11. Unlock Customer")
		fmt.Println("12. System Statistics")
		fmt.Println("13. Export Customers to CSV")
		fmt.Println("14. Backup Data Files")
		fmt.Println("15. Clear All Data")
		fmt.Println("16. Logout")

		choice, ok := sh.readInt("Choose an option: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			sh.printCustomers(sh.svc.ListCustomers())
		case 2:
			sh.customersByType()
		case 3:
			sh.customersByStatus()
		case 4:
			sh.printTransactions(sh.svc.AllTransactions(), true)
		case 5:
			sh.transactionsByType()
		case 6:
			sh.transactionsInRange()
		case 7:
			sh.registerCustomer(ctx, false)
		case 8:
			sh.deleteCustomer(ctx)
		case 9:
			sh.toggleStatus(ctx)
		case 10:
			if number, ok := sh.readLineBack("Enter account number: "); ok {
				sh.printTransactions(sh.svc.History(number), false)
				totals := sh.svc.AccountTotals(number)
				fmt.Printf("Total deposits: %s  Total withdrawals: %s  Transactions: %d\n",
					totals.TotalDeposits, totals.TotalWithdrawals, totals.TransactionCount)
			}
		case 11:
			if number, ok := sh.readLineBack("Enter account number to unlock: "); ok {
				resp, _ := sh.svc.UnlockCustomer(ctx, number)
				printOutcome(resp.Success, resp.Message, resp.Errors)
			}
		case 12:
			sh.printStatistics()
		case 13:
			if path, ok := sh.readLineBack("Enter CSV file path: "); ok {
				resp, _ := sh.svc.ExportCustomersCSV(ctx, path)
				printOutcome(resp.Success, resp.Message, resp.Errors)
			}
		case 14:
			resp, _ := sh.svc.BackupData(ctx)
			printOutcome(resp.Success, resp.Message, resp.Errors)
			if resp.Success && resp.Data != nil {
				fmt.Println("Backup directory:", resp.Data.Path)
			}
		case 15:
			sh.clearAllData(ctx)
		case 16:
			fmt.Println("Admin logged out.")
			return
		default:
			fmt.Println("Invalid option! Please try again.")
		}
	}
}

func (sh *shell) customerInterface(ctx context.Context) {
	for {
		fmt.Println("\n=== CUSTOMER INTERFACE ===")
		fmt.Println("1. Create New Account")
		fmt.Println("2. Login to Existing Account")
		fmt.Println("3. Back to Main Menu")

		choice, ok := sh.readInt("Choose an option: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			sh.registerCustomer(ctx, true)
		case 2:
			sh.customerLogin(ctx)
		case 3:
			return
		default:
			fmt.Println("Invalid option! Please try again.")
		}
	}
}

// registerCustomer enforces the minimum opening deposit only on the
// customer-facing path; admins may open accounts with any non-negative amount.
func (sh *shell) registerCustomer(ctx context.Context, enforceMinimum bool) {
	fmt.Println("\n=== CREATE ACCOUNT ===")

	name, ok := sh.readLineBack("Enter customer name: ")
	if !ok {
		return
	}
	secret, ok := sh.readLineBack("Choose a secret (PIN or password): ")
	if !ok {
		return
	}

	accountType := ""
	for accountType == "" {
		raw, ok := sh.readLineBack("Enter account type (SAVINGS/CHECKING): ")
		if !ok {
			return
		}
		if _, err := domain.ParseAccountType(raw); err != nil {
			fmt.Println("Invalid account type! Please enter SAVINGS or CHECKING.")
			continue
		}
		accountType = raw
	}

	var deposit decimal.Decimal
	for {
		amount, ok := sh.readAmount("Enter initial deposit amount: ")
		if !ok {
			return
		}
		if amount.IsNegative() {
			fmt.Println("Deposit cannot be negative.")
			continue
		}
		if enforceMinimum && amount.LessThan(decimal.NewFromInt(50)) {
			fmt.Println("Minimum initial deposit is 50.00")
			continue
		}
		deposit = amount
		break
	}

	resp, _ := sh.svc.Register(ctx, models.RegisterCustomerRequest{
		Name:           name,
		Secret:         secret,
		AccountType:    accountType,
		InitialDeposit: deposit,
	})
	printOutcome(resp.Success, resp.Message, resp.Errors)
	if resp.Success && resp.Data != nil {
		fmt.Println("Account Number:", resp.Data.AccountNumber)
		fmt.Println("Keep your account number and secret safe.")
	}
}

func (sh *shell) customerLogin(ctx context.Context) {
	fmt.Println("\n=== CUSTOMER LOGIN ===")

	number, ok := sh.readLineBack("Enter your account number: ")
	if !ok {
		return
	}
	secret, ok := sh.readLineBack("Enter your secret: ")
	if !ok {
		return
	}

	resp, _ := sh.svc.Authenticate(ctx, models.AuthenticateRequest{AccountNumber: number, Secret: secret})
	if !resp.Success {
		printOutcome(false, resp.Message, resp.Errors)
		return
	}

	fmt.Println("Welcome,", resp.Data.Name+"!")
	sh.customerMenu(ctx, number, secret)
}

func (sh *shell) customerMenu(ctx context.Context, number, secret string) {
	for {
		fmt.Println("\n=== ACCOUNT MENU (" + number + ") ===")
		fmt.Println("1. Check Balance")
		fmt.Println("2. Deposit Money")
		fmt.Println("3. Withdraw Money")
		fmt.Println("4. Transfer Money")
		fmt.Println("5. View Recent Transactions (Last 5)")
		fmt.Println("6. View All Transaction History")
		fmt.Println("7. Account Information")
		fmt.Println("8. Logout")

		choice, ok := sh.readInt("Choose an option: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			resp, _ := sh.svc.CheckBalance(ctx, models.AuthenticateRequest{AccountNumber: number, Secret: secret})
			if resp.Success && resp.Data != nil {
				fmt.Println("Current balance:", resp.Data.Balance)
				if resp.Data.InterestAccrued != "0.00" {
					fmt.Println("Interest added:", resp.Data.InterestAccrued)
				}
			} else {
				printOutcome(false, resp.Message, resp.Errors)
			}
		case 2:
			if amount, ok := sh.readAmount("Enter deposit amount: "); ok {
				resp, _ := sh.svc.Deposit(ctx, models.DepositRequest{AccountNumber: number, Secret: secret, Amount: amount})
				printOutcome(resp.Success, resp.Message, resp.Errors)
				if resp.Success && resp.Data != nil {
					fmt.Println("New balance:", resp.Data.Balance)
				}
			}
		case 3:
			if amount, ok := sh.readAmount("Enter withdrawal amount: "); ok {
				resp, _ := sh.svc.Withdraw(ctx, models.WithdrawRequest{AccountNumber: number, Secret: secret, Amount: amount})
				printOutcome(resp.Success, resp.Message, resp.Errors)
				if resp.Success && resp.Data != nil {
					fmt.Println("New balance:", resp.Data.Balance)
				}
			}
		case 4:
			sh.transfer(ctx, number, secret)
		case 5:
			sh.printTransactions(sh.svc.RecentTransactions(number, 5), false)
		case 6:
			sh.printTransactions(sh.svc.History(number), false)
		case 7:
			resp, _ := sh.svc.Authenticate(ctx, models.AuthenticateRequest{AccountNumber: number, Secret: secret})
			if resp.Success && resp.Data != nil {
				info := resp.Data
				fmt.Println("Account Number:", info.AccountNumber)
				fmt.Println("Account Holder:", info.Name)
				fmt.Println("Account Type:  ", info.AccountType)
				fmt.Println("Balance:       ", info.Balance)
				fmt.Println("Status:        ", info.Status)
				fmt.Println("Created:       ", info.CreatedAt)
			} else {
				printOutcome(false, resp.Message, resp.Errors)
			}
		case 8:
			fmt.Println("Logged out.")
			return
		default:
			fmt.Println("Invalid option! Please try again.")
		}
	}
}

func (sh *shell) transfer(ctx context.Context, number, secret string) {
	toAccount, ok := sh.readLineBack("Enter destination account number: ")
	if !ok {
		return
	}
	amount, ok := sh.readAmount("Enter transfer amount: ")
	if !ok {
		return
	}

	confirm, ok := sh.readLineBack(fmt.Sprintf("Confirm transfer of %s to %s? (yes/no): ", amount.StringFixed(2), toAccount))
	if !ok || !strings.EqualFold(confirm, "yes") {
		fmt.Println("Transfer cancelled.")
		return
	}

	resp, _ := sh.svc.Transfer(ctx, models.TransferRequest{
		FromAccount: number,
		Secret:      secret,
		ToAccount:   toAccount,
		Amount:      amount,
	})
	printOutcome(resp.Success, resp.Message, resp.Errors)
	if resp.Success && resp.Data != nil {
		fmt.Println("Remaining balance:", resp.Data.FromBalance)
	}
}

func (sh *shell) customersByType() {
	raw, ok := sh.readLineBack("Enter account type (SAVINGS/CHECKING): ")
	if !ok {
		return
	}
	accountType, err := domain.ParseAccountType(raw)
	if err != nil {
		fmt.Println("Invalid account type! Please enter SAVINGS or CHECKING.")
		return
	}
	sh.printCustomers(sh.svc.ListCustomersByType(accountType))
}

func (sh *shell) customersByStatus() {
	raw, ok := sh.readLineBack("Enter status (active/suspended): ")
	if !ok {
		return
	}
	switch strings.ToLower(raw) {
	case "active":
		sh.printCustomers(sh.svc.ListCustomersByStatus(true))
	case "suspended":
		sh.printCustomers(sh.svc.ListCustomersByStatus(false))
	default:
		fmt.Println("Invalid status! Please enter active or suspended.")
	}
}

func (sh *shell) transactionsByType() {
	raw, ok := sh.readLineBack("Enter transaction type (DEPOSIT/WITHDRAWAL/TRANSFER_IN/TRANSFER_OUT): ")
	if !ok {
		return
	}
	txType, err := domain.ParseTransactionType(raw)
	if err != nil {
		fmt.Println("Invalid transaction type!")
		return
	}
	sh.printTransactions(sh.svc.TransactionsByType(txType), true)
}

func (sh *shell) transactionsInRange() {
	number, ok := sh.readLineBack("Enter account number: ")
	if !ok {
		return
	}
	from, ok := sh.readDate("Enter start date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	to, ok := sh.readDate("Enter end date (YYYY-MM-DD): ")
	if !ok {
		return
	}

	// Widen the exclusive bounds so both edge days are included.
	sh.printTransactions(sh.svc.TransactionsInRange(number, from.Add(-time.Nanosecond), to.AddDate(0, 0, 1)), false)
}

func (sh *shell) clearAllData(ctx context.Context) {
	fmt.Println("WARNING: this permanently deletes all customers and transactions.")
	confirm, ok := sh.readLineBack("Type 'yes' to confirm: ")
	if !ok || !strings.EqualFold(confirm, "yes") {
		fmt.Println("Clear cancelled.")
		return
	}

	resp, _ := sh.svc.ClearAllData(ctx)
	printOutcome(resp.Success, resp.Message, resp.Errors)
}

func (sh *shell) deleteCustomer(ctx context.Context) {
	number, ok := sh.readLineBack("Enter account number to delete: ")
	if !ok {
		return
	}
	confirm, ok := sh.readLineBack("Are you sure? (yes/no): ")
	if !ok || !strings.EqualFold(confirm, "yes") {
		fmt.Println("Delete cancelled.")
		return
	}

	resp, _ := sh.svc.DeleteCustomer(ctx, number)
	printOutcome(resp.Success, resp.Message, resp.Errors)
}

func (sh *shell) toggleStatus(ctx context.Context) {
	number, ok := sh.readLineBack("Enter account number: ")
	if !ok {
		return
	}

	resp, _ := sh.svc.ToggleStatus(ctx, number)
	printOutcome(resp.Success, resp.Message, resp.Errors)
	if resp.Success && resp.Data != nil {
		if resp.Data.Active {
			fmt.Println("Account is now active.")
		} else {
			fmt.Println("Account is now suspended.")
		}
	}
}

func (sh *shell) printCustomers(customers []models.CustomerSummary) {
	if len(customers) == 0 {
		fmt.Println("No customers found.")
		return
	}

	fmt.Printf("%-18s %-20s %-10s %12s  %-10s %-10s\n", "Account No", "Name", "Type", "Balance", "Status", "Created")
	fmt.Println(strings.Repeat("-", 88))
	for _, c := range customers {
		status := c.Status
		if c.Locked {
			status += " (locked)"
		}
		fmt.Printf("%-18s %-20s %-10s %12s  %-10s %-10s\n",
			c.AccountNumber, c.Name, c.AccountType, c.Balance, status, c.CreatedAt)
	}
}

func (sh *shell) printTransactions(transactions []domain.Transaction, withAccount bool) {
	if len(transactions) == 0 {
		fmt.Println("No transactions found.")
		return
	}

	if withAccount {
		fmt.Printf("%-18s %-20s %-13s %12s  %s\n", "Account No", "Date/Time", "Type", "Amount", "Description")
	} else {
		fmt.Printf("%-20s %-13s %12s  %s\n", "Date/Time", "Type", "Amount", "Description")
	}
	fmt.Println(strings.Repeat("-", 88))
	for _, tx := range transactions {
		when := tx.Timestamp.Format("2006-01-02 15:04:05")
		if withAccount {
			fmt.Printf("%-18s %-20s %-13s %12s  %s\n", tx.AccountNumber, when, tx.Type, tx.Amount.StringFixed(2), tx.Description)
		} else {
			fmt.Printf("%-20s %-13s %12s  %s\n", when, tx.Type, tx.Amount.StringFixed(2), tx.Description)
		}
	}
}

func (sh *shell) printStatistics() {
	stats := sh.svc.Statistics()
	fmt.Println("\n=== SYSTEM STATISTICS ===")
	fmt.Println("Customers:     ", stats.CustomerCount)
	fmt.Println("  Active:      ", stats.ActiveCount)
	fmt.Println("  Suspended:   ", stats.SuspendedCount)
	fmt.Println("  Locked:      ", stats.LockedCount)
	fmt.Println("  Savings:     ", stats.SavingsCount)
	fmt.Println("  Checking:    ", stats.CheckingCount)
	fmt.Println("Total balance: ", stats.TotalBalance)
	fmt.Println("Transactions:  ", stats.TransactionCount)
}

func printOutcome(success bool, message string, errs []string) {
	if success {
		fmt.Println(message)
		return
	}
	if len(errs) > 0 {
		fmt.Println(message + ": " + strings.Join(errs, "; "))
		return
	}
	fmt.Println(message)
}

// readLine reports ok=false once the scanner is exhausted, so callers can
// unwind instead of re-prompting a closed stdin forever.
func (sh *shell) readLine(prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sh.in.Scan() {
		fmt.Println()
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

// readLineBack returns ok=false when the user types "back" or input ends.
func (sh *shell) readLineBack(prompt string) (string, bool) {
	input, ok := sh.readLine(prompt)
	if !ok || strings.EqualFold(input, "back") {
		return "", false
	}
	return input, true
}

func (sh *shell) readInt(prompt string) (int, bool) {
	for {
		input, ok := sh.readLine(prompt)
		if !ok {
			return 0, false
		}
		value, err := strconv.Atoi(input)
		if err != nil {
			fmt.Println("Invalid input! Please enter a valid number.")
			continue
		}
		return value, true
	}
}

func (sh *shell) readDate(prompt string) (time.Time, bool) {
	for {
		input, ok := sh.readLineBack(prompt)
		if !ok {
			return time.Time{}, false
		}
		date, err := time.ParseInLocation("2006-01-02", input, time.Local)
		if err != nil {
			fmt.Println("Invalid date! Please use YYYY-MM-DD or 'back' to return.")
			continue
		}
		return date, true
	}
}

func (sh *shell) readAmount(prompt string) (decimal.Decimal, bool) {
	for {
		input, ok := sh.readLineBack(prompt)
		if !ok {
			return decimal.Zero, false
		}
		amount, err := decimal.NewFromString(input)
		if err != nil {
			fmt.Println("Invalid input! Please enter a valid amount or 'back' to return.")
			continue
		}
		return amount, true
	}
}
