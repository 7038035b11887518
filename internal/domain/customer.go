package domain

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxFailedAttempts is the number of consecutive failed credential checks
// after which a customer is locked until an explicit admin unlock.
const MaxFailedAttempts = 3

// Customer binds a display name and a hashed credential to exactly one
// account. The raw secret is never stored after registration.
type Customer struct {
	mu             sync.Mutex
	name           string
	credentialHash string
	account        *Account
	failedAttempts int
	locked         bool
}

func NewCustomer(name, secret string, account *Account, bcryptCost int) (*Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	return &Customer{
		name:           name,
		credentialHash: string(hash),
		account:        account,
	}, nil
}

func RestoreCustomer(name, credentialHash string, account *Account, failedAttempts int, locked bool) *Customer {
	return &Customer{
		name:           name,
		credentialHash: credentialHash,
		account:        account,
		failedAttempts: failedAttempts,
		locked:         locked,
	}
}

func (c *Customer) Name() string      { return c.name }
func (c *Customer) Account() *Account { return c.account }

func (c *Customer) CredentialHash() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credentialHash
}

func (c *Customer) FailedAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failedAttempts
}

func (c *Customer) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// ValidateCredential checks secret against the stored hash. A locked
// customer always fails without consuming an attempt; the third consecutive
// failure sets the lock.
func (c *Customer) ValidateCredential(secret string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.locked {
		return false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.credentialHash), []byte(secret)); err != nil {
		c.failedAttempts++
		if c.failedAttempts >= MaxFailedAttempts {
			c.locked = true
		}
		return false
	}

	c.failedAttempts = 0
	return true
}

// Unlock clears the lock flag and the failed-attempt counter. Admin-only.
func (c *Customer) Unlock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locked = false
	c.failedAttempts = 0
}
