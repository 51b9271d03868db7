package librastore

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config controls where the library persists and how it seeds itself. Zero
// values select the built-in defaults (in-memory storage, standard storage
// key, 50-book re-seed threshold, 44 extra seed books, 30-day loans).
type Config struct {
	Dir        string
	StorageKey string
	MinBooks   int
	ExtraBooks int
	LoanDays   int
}

// FromEnv builds a Config from LIBRASTORE_* environment variables, loading a
// .env file first when one is present.
func FromEnv() Config {
	godotenv.Load()

	return Config{
		Dir:        getEnv("LIBRASTORE_DIR", ""),
		StorageKey: getEnv("LIBRASTORE_STORAGE_KEY", ""),
		MinBooks:   getEnvInt("LIBRASTORE_MIN_BOOKS", 0),
		ExtraBooks: getEnvInt("LIBRASTORE_EXTRA_BOOKS", 0),
		LoanDays:   getEnvInt("LIBRASTORE_LOAN_DAYS", 0),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
