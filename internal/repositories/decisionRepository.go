package repositories

import (
	"errors"
	"time"

	"ETHInvestBot/internal/models"

	"gorm.io/gorm"
)

type DecisionRepository struct {
	db *gorm.DB
}

// NewDecisionRepository creates a new instance of DecisionRepository
func NewDecisionRepository(db *gorm.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// Record appends a new decision to the log. The log is append-only.
func (r *DecisionRepository) Record(recommendation string, price float64, snapshot models.IndicatorSnapshot, date time.Time) (*models.Decision, error) {
	if recommendation == "" {
		return nil, errors.New("recommendation cannot be empty")
	}
	if price <= 0 {
		return nil, errors.New("price must be positive")
	}

	decision := &models.Decision{
		Date:           date,
		Recommendation: recommendation,
		Price:          price,
		Analysis:       snapshot,
	}
	if err := r.db.Create(decision).Error; err != nil {
		return nil, err
	}
	return decision, nil
}

// FindAll retrieves the full decision log in chronological order
func (r *DecisionRepository) FindAll() ([]models.Decision, error) {
	var decisions []models.Decision
	err := r.db.Order("date ASC").Find(&decisions).Error
	return decisions, err
}
