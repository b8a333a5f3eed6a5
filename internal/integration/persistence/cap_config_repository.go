package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
	"github.com/pnl-tracker/backend/internal/integration/persistence/model"
)

// capConfigRepository implements the adapter.CapConfigRepository interface.
type capConfigRepository struct {
	db *gorm.DB
}

// NewCapConfigRepository creates a new cap configuration repository instance.
func NewCapConfigRepository(db *gorm.DB) adapter.CapConfigRepository {
	return &capConfigRepository{
		db: db,
	}
}

// FindByAgentAndYear retrieves the agent's cap configuration for a period.
func (r *capConfigRepository) FindByAgentAndYear(ctx context.Context, agentID uuid.UUID, year int) (*entity.CapConfiguration, error) {
	var configModel model.CapConfigurationModel
	result := r.db.WithContext(ctx).
		Where("agent_id = ? AND year = ?", agentID, year).
		First(&configModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCapConfigNotFound
		}
		return nil, result.Error
	}
	return configModel.ToEntity(), nil
}

// Upsert creates or replaces the agent's cap configuration for a period.
func (r *capConfigRepository) Upsert(ctx context.Context, config *entity.CapConfiguration) error {
	configModel := model.CapConfigurationFromEntity(config)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "agent_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_cap", "updated_at"}),
		}).
		Create(configModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
