package config

import (
	"log"
	"os"
	"strconv"

	"beezio/internal/services/pricing"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetFloatEnv returns a float environment variable or a default value.
func GetFloatEnv(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// LoadFeeConfig reads the pricing fee constants from the environment,
// falling back to the production defaults. The same config must feed
// display-time and checkout-time pricing, so it is loaded exactly once
// at startup and handed to a single shared engine.
func LoadFeeConfig() pricing.FeeConfig {
	defaults := pricing.DefaultFeeConfig()
	return pricing.FeeConfig{
		PlatformFeePercent:      GetFloatEnv("PLATFORM_FEE_PERCENT", defaults.PlatformFeePercent),
		StripePercent:           GetFloatEnv("STRIPE_PERCENT", defaults.StripePercent),
		StripeFixedFee:          GetFloatEnv("STRIPE_FIXED_FEE", defaults.StripeFixedFee),
		SurchargeThreshold:      GetFloatEnv("PLATFORM_FEE_UNDER_20_THRESHOLD", defaults.SurchargeThreshold),
		SurchargeAmount:         GetFloatEnv("PLATFORM_FEE_UNDER_20_SURCHARGE", defaults.SurchargeAmount),
		ReferralOverridePercent: GetFloatEnv("REFERRAL_OVERRIDE_PERCENT_OF_SALE", defaults.ReferralOverridePercent),
	}
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
