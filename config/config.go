package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func Load() (*config, error) {
	if err := godotenv.Load(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return &config{
		Exchange: ExchangeConfig{
			APIKey:    os.Getenv("BINANCE_API_KEY"),
			SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     EnvtoInt(os.Getenv("DB_PORT")),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		Risk: RiskConfig{
			Tolerance:            getRiskTolerance(),
			PortfolioValue:       EnvtoFloat(os.Getenv("PORTFOLIO_VALUE"), 10000),
			MaxRiskPerTrade:      EnvtoFloat(os.Getenv("MAX_RISK_PER_TRADE"), 0.02),
			MaxPortfolioExposure: EnvtoFloat(os.Getenv("MAX_PORTFOLIO_EXPOSURE"), 0.25),
		},
		Symbols: getSymbols(),
	}, nil
}

// helper env(string) to int
func EnvtoInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// helper env(string) to float with default
func EnvtoFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// helper to get risk tolerance level
func getRiskTolerance() string {
	tolerance := strings.ToLower(os.Getenv("RISK_TOLERANCE"))
	switch tolerance {
	case "low", "medium", "high":
		return tolerance
	}
	return "medium" // Default if none specified
}

// helper to get symbols
func getSymbols() []string {
	symbols := os.Getenv("TRADING_SYMBOLS")
	if symbols == "" {
		return []string{"ETHUSDT"} // Default pair if none specified
	}
	return strings.Split(symbols, ",")
}
