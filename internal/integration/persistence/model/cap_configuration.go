package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// CapConfigurationModel represents the cap_configurations table in the
// database. One row per (agent, year).
type CapConfigurationModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AgentID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cap_agent_year"`
	Year      int             `gorm:"not null;uniqueIndex:idx_cap_agent_year"`
	TotalCap  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CapConfigurationModel.
func (CapConfigurationModel) TableName() string {
	return "cap_configurations"
}

// ToEntity converts a CapConfigurationModel to a domain CapConfiguration entity.
func (m *CapConfigurationModel) ToEntity() *entity.CapConfiguration {
	return &entity.CapConfiguration{
		ID:        m.ID,
		AgentID:   m.AgentID,
		Year:      m.Year,
		TotalCap:  m.TotalCap,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CapConfigurationFromEntity creates a CapConfigurationModel from a domain entity.
func CapConfigurationFromEntity(config *entity.CapConfiguration) *CapConfigurationModel {
	return &CapConfigurationModel{
		ID:        config.ID,
		AgentID:   config.AgentID,
		Year:      config.Year,
		TotalCap:  config.TotalCap,
		CreatedAt: config.CreatedAt,
		UpdatedAt: config.UpdatedAt,
	}
}
