package config

type config struct {
	Exchange ExchangeConfig
	Database DatabaseConfig
	Risk     RiskConfig
	Symbols  []string
}

type ExchangeConfig struct {
	APIKey    string
	SecretKey string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RiskConfig struct {
	Tolerance            string  // low, medium, high
	PortfolioValue       float64 // total portfolio value in USD
	MaxRiskPerTrade      float64 // fraction, 0.02 = 2%
	MaxPortfolioExposure float64 // fraction, 0.25 = 25%
}
