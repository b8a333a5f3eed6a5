// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
	"github.com/pnl-tracker/backend/internal/integration/persistence/model"
)

// dealRepository implements the adapter.DealRepository interface.
type dealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a new deal repository instance.
func NewDealRepository(db *gorm.DB) adapter.DealRepository {
	return &dealRepository{
		db: db,
	}
}

// Create creates a new deal in the database.
func (r *dealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	dealModel := model.DealFromEntity(deal)
	result := r.db.WithContext(ctx).Create(dealModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a deal by its ID.
func (r *dealRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Deal, error) {
	var dealModel model.DealModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&dealModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDealNotFound
		}
		return nil, result.Error
	}
	return dealModel.ToEntity(), nil
}

// FindByAgent retrieves all deals for an agent, most recent closing first.
func (r *dealRepository) FindByAgent(ctx context.Context, agentID uuid.UUID) ([]*entity.Deal, error) {
	var dealModels []model.DealModel
	result := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("closing_date DESC, id ASC").
		Find(&dealModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDealEntities(dealModels), nil
}

// FindByAgentAndYear retrieves the agent's deals closing in the given
// calendar year, in replay order.
func (r *dealRepository) FindByAgentAndYear(ctx context.Context, agentID uuid.UUID, year int) ([]*entity.Deal, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var dealModels []model.DealModel
	result := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Where("closing_date >= ? AND closing_date < ?", start, end).
		Order("closing_date ASC, id ASC").
		Find(&dealModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDealEntities(dealModels), nil
}

// FindByAgentAndMonth retrieves the agent's deals closing in the given month.
func (r *dealRepository) FindByAgentAndMonth(ctx context.Context, agentID uuid.UUID, year int, month time.Month) ([]*entity.Deal, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var dealModels []model.DealModel
	result := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Where("closing_date >= ? AND closing_date < ?", start, end).
		Order("closing_date ASC, id ASC").
		Find(&dealModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDealEntities(dealModels), nil
}

// Update updates an existing deal in the database.
func (r *dealRepository) Update(ctx context.Context, deal *entity.Deal) error {
	dealModel := model.DealFromEntity(deal)
	result := r.db.WithContext(ctx).Save(dealModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a deal from the database.
func (r *dealRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.DealModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ApplyDerived persists replayed cap_amount and final_income values in one
// transaction, so readers never observe a half-applied replay.
func (r *dealRepository) ApplyDerived(ctx context.Context, deals []*entity.Deal) error {
	if len(deals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, deal := range deals {
			result := tx.Model(&model.DealModel{}).
				Where("id = ?", deal.ID).
				Updates(map[string]interface{}{
					"cap_amount":   deal.CapAmount,
					"final_income": deal.FinalIncome,
				})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// ExistsByIDAndAgent checks if a deal exists for a given ID and agent.
func (r *dealRepository) ExistsByIDAndAgent(ctx context.Context, id uuid.UUID, agentID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.DealModel{}).
		Where("id = ? AND agent_id = ?", id, agentID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func toDealEntities(dealModels []model.DealModel) []*entity.Deal {
	deals := make([]*entity.Deal, len(dealModels))
	for i, dm := range dealModels {
		deals[i] = dm.ToEntity()
	}
	return deals
}
