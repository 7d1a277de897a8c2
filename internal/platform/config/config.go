package config

import (
	"os"
	"strconv"

	"tontine/internal/tontine/models"
)

// Server captures process-level configuration.
type Server struct {
	Addr     string
	Settings models.Settings
}

// FromEnv builds a Server config from environment variables so main stays
// lean. The settings record seeds the store once per process; afterwards it
// is owned by the admin settings endpoint.
func FromEnv() Server {
	addr := os.Getenv("TONTINE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	currency := os.Getenv("TONTINE_CURRENCY")
	if currency == "" {
		currency = "XOF"
	}

	return Server{
		Addr: addr,
		Settings: models.Settings{
			Currency:              currency,
			WithdrawalFeeRate:     envRate("TONTINE_WITHDRAWAL_FEE_RATE", 0.02),
			TontineCommissionRate: envRate("TONTINE_COMMISSION_RATE", 0.05),
			LoanInterestRate:      envRate("TONTINE_LOAN_INTEREST_RATE", 0.10),
			RequireVerifiedKYC:    os.Getenv("TONTINE_REQUIRE_VERIFIED_KYC") == "true",
		},
	}
}

func envRate(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 || rate > 1 {
		return fallback
	}
	return rate
}
