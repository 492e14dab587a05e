package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ETHInvestBot/config"
	"ETHInvestBot/internal/handlers"
	"ETHInvestBot/internal/models"
	"ETHInvestBot/internal/repositories"
	"ETHInvestBot/internal/services/advisor"
	"ETHInvestBot/internal/services/risk"

	"github.com/adshao/go-binance/v2"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Setup logging
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer zapLogger.Sync()
	sugar := zapLogger.Sugar()

	// Setup database
	db := setupDatabase(cfg.Database)

	// Initialize repositories
	priceRepo := repositories.NewPriceRepository(db)
	tradeRepo := repositories.NewTradeRepository(db)
	decisionRepo := repositories.NewDecisionRepository(db)

	// Initialize Binance client
	client := binance.NewClient(cfg.Exchange.APIKey, cfg.Exchange.SecretKey)

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start price handling
	priceHandler := handlers.NewPriceHandler(client, priceRepo, cfg.Symbols, sugar)
	if err := priceHandler.Start(ctx); err != nil {
		sugar.Fatalf("Failed to start price handler: %v", err)
	}

	sugar.Info("Price recording started...")

	// Initialize advisor components
	adv := advisor.NewAdvisor(cfg.Risk.Tolerance)
	riskManager := risk.NewRiskManager(
		cfg.Risk.PortfolioValue,
		cfg.Risk.MaxRiskPerTrade,
		cfg.Risk.MaxPortfolioExposure,
	)

	advisorHandler := handlers.NewAdvisorHandler(priceRepo, tradeRepo, decisionRepo, adv, riskManager, sugar)

	// Run analysis for each symbol
	for _, symbol := range cfg.Symbols {
		report, err := advisorHandler.RunAnalysis(symbol)
		if err != nil {
			sugar.Errorf("Analysis failed for %s: %v", symbol, err)
			continue
		}
		printReport(report)
	}

	// Handle shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	sugar.Info("Shutting down...")
	cancel()
	sugar.Info("Shutdown complete")
}

func printReport(report *handlers.AdvisorReport) {
	rec := report.Recommendation

	fmt.Printf("\n=== %s Analysis ===\n", report.Symbol)
	fmt.Printf("Price: $%.2f\n", rec.Price)
	fmt.Printf("Recommendation: %s (buy score %.2f, sell score %.2f)\n", rec.Label, rec.BuyScore, rec.SellScore)
	for _, explanation := range rec.Explanations {
		fmt.Printf("  - %s\n", explanation)
	}

	fmt.Println("\n=== Risk Management ===")
	fmt.Printf("Recommended stop-loss (%s): $%.2f\n",
		report.StopLoss.RecommendedMethod, report.StopLoss.RecommendedStopPrice)
	fmt.Printf("Position size: %.4f coins ($%.2f, %.1f%% of portfolio)\n",
		report.PositionSize.Coins,
		report.PositionSize.Dollars,
		report.PositionSize.PortfolioPercentage*100)
	if report.TakeProfit != nil {
		for _, target := range report.TakeProfit.Targets {
			fmt.Printf("Take profit %.1fR: $%.2f (+%.1f%%)\n",
				target.Ratio, target.TargetPrice, target.ProfitPercentage*100)
		}
	}

	fmt.Println("\n=== Performance ===")
	fmt.Printf("Holdings: %.4f coins (value $%.2f)\n", report.Portfolio.Balance, report.Portfolio.CurrentValue)
	fmt.Printf("Total P&L: $%.2f (ROI %.2f%%)\n", report.Portfolio.TotalPL, report.Portfolio.ROI*100)
	if report.Metrics != nil {
		fmt.Printf("Trades: %d (%d buys, %d sells)\n",
			report.Metrics.TotalTrades, report.Metrics.BuyTrades, report.Metrics.SellTrades)
		if report.Metrics.DaysInvested > 0 {
			fmt.Printf("Annualized return: %.2f%%\n", report.Metrics.AnnualizedReturn*100)
		}
		if report.Metrics.HasRiskMetrics {
			fmt.Printf("Sharpe Ratio: %.2f\n", report.Metrics.SharpeRatio)
			fmt.Printf("Max Drawdown: %.2f%%\n", report.Metrics.MaxDrawdown*100)
		}
		if report.Metrics.EvaluatedDecisions > 0 {
			fmt.Printf("Decision accuracy: %.1f%% (%d of %d)\n",
				report.Metrics.DecisionAccuracy*100,
				report.Metrics.CorrectDecisions,
				report.Metrics.EvaluatedDecisions)
		}
	}
}

func setupDatabase(dbConfig config.DatabaseConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto migrate database schemas
	err = db.AutoMigrate(&models.Price{}, &models.Trade{}, &models.Decision{})
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}
