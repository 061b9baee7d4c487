package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/sebiten/padel-app/logger"
)

// LoadEnv loads environment variables from a .env file if present.
// Deployed environments provide variables directly, so a missing file is fine.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.InfoLogger.Info("No .env file found, using environment variables")
	}
}

// CheckRequiredEnv logs every missing required variable and reports whether
// the deployment is usable. The gateway and webhook requests cannot be built
// without these, so this is a deployment-time error, not a runtime one.
func CheckRequiredEnv() bool {
	required := []string{"DATABASE_URL", "MERCADOPAGO_ACCESS_TOKEN", "SITE_URL", "JWT_SECRET"}

	ok := true
	for _, name := range required {
		if os.Getenv(name) == "" {
			logger.ErrorLogger.Errorf("Required environment variable %s is not set", name)
			ok = false
		}
	}
	return ok
}
