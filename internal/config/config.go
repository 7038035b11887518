package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const defaultDataDir = "data"
const defaultAdminPassword = "admin123"

type Config struct {
	DataDir       string
	AdminPassword string
	BcryptCost    int
}

func Load() (Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	dataDir := strings.TrimSpace(os.Getenv("BANK_DATA_DIR"))
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	adminPassword := strings.TrimSpace(os.Getenv("BANK_ADMIN_PASSWORD"))
	if adminPassword == "" {
		adminPassword = defaultAdminPassword
	}

	cost := bcrypt.DefaultCost
	if raw := strings.TrimSpace(os.Getenv("BANK_BCRYPT_COST")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse BANK_BCRYPT_COST: %w", err)
		}
		if parsed < bcrypt.MinCost || parsed > bcrypt.MaxCost {
			return Config{}, fmt.Errorf("BANK_BCRYPT_COST %d outside %d..%d", parsed, bcrypt.MinCost, bcrypt.MaxCost)
		}
		cost = parsed
	}

	return Config{
		DataDir:       dataDir,
		AdminPassword: adminPassword,
		BcryptCost:    cost,
	}, nil
}
