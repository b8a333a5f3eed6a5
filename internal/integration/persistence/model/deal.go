// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// DealModel represents the deals table in the database.
type DealModel struct {
	ID                        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AgentID                   uuid.UUID       `gorm:"type:uuid;not null;index"`
	HouseAddress              string          `gorm:"type:varchar(255);not null"`
	AmountSoldFor             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CommissionPercent         decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	SplitPercent              decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	TeamBrokerageSplitPercent decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	LeadSource                string          `gorm:"type:varchar(64);not null"`
	ClosingDate               time.Time       `gorm:"type:date;not null;index"`

	// Derived by the cap replay, rewritten wholesale on every period change.
	CapAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	FinalIncome decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the DealModel.
func (DealModel) TableName() string {
	return "deals"
}

// ToEntity converts a DealModel to a domain Deal entity.
func (m *DealModel) ToEntity() *entity.Deal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Deal{
		ID:                        m.ID,
		AgentID:                   m.AgentID,
		HouseAddress:              m.HouseAddress,
		AmountSoldFor:             m.AmountSoldFor,
		CommissionPercent:         m.CommissionPercent,
		SplitPercent:              m.SplitPercent,
		TeamBrokerageSplitPercent: m.TeamBrokerageSplitPercent,
		LeadSource:                m.LeadSource,
		ClosingDate:               m.ClosingDate,
		CapAmount:                 m.CapAmount,
		FinalIncome:               m.FinalIncome,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
		DeletedAt:                 deletedAt,
	}
}

// DealFromEntity creates a DealModel from a domain Deal entity.
func DealFromEntity(deal *entity.Deal) *DealModel {
	var deletedAt gorm.DeletedAt
	if deal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *deal.DeletedAt, Valid: true}
	}

	return &DealModel{
		ID:                        deal.ID,
		AgentID:                   deal.AgentID,
		HouseAddress:              deal.HouseAddress,
		AmountSoldFor:             deal.AmountSoldFor,
		CommissionPercent:         deal.CommissionPercent,
		SplitPercent:              deal.SplitPercent,
		TeamBrokerageSplitPercent: deal.TeamBrokerageSplitPercent,
		LeadSource:                deal.LeadSource,
		ClosingDate:               deal.ClosingDate,
		CapAmount:                 deal.CapAmount,
		FinalIncome:               deal.FinalIncome,
		CreatedAt:                 deal.CreatedAt,
		UpdatedAt:                 deal.UpdatedAt,
		DeletedAt:                 deletedAt,
	}
}
