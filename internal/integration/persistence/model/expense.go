package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database. Recurring
// templates and their materialized instances share the table; the flags
// tell them apart.
type ExpenseModel struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	AgentID             uuid.UUID        `gorm:"type:uuid;not null;index"`
	Date                time.Time        `gorm:"type:date;not null;index"`
	Category            string           `gorm:"type:varchar(64);not null;index"`
	Amount              decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Budget              *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Description         string           `gorm:"type:text"`
	Recurring           bool             `gorm:"default:false;index"`
	IsRecurringInstance bool             `gorm:"default:false"`
	TemplateID          *uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt           time.Time        `gorm:"not null"`
	UpdatedAt           time.Time        `gorm:"not null"`
	DeletedAt           gorm.DeletedAt   `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Expense{
		ID:                  m.ID,
		AgentID:             m.AgentID,
		Date:                m.Date,
		Category:            m.Category,
		Amount:              m.Amount,
		Budget:              m.Budget,
		Description:         m.Description,
		Recurring:           m.Recurring,
		IsRecurringInstance: m.IsRecurringInstance,
		TemplateID:          m.TemplateID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	var deletedAt gorm.DeletedAt
	if expense.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *expense.DeletedAt, Valid: true}
	}

	return &ExpenseModel{
		ID:                  expense.ID,
		AgentID:             expense.AgentID,
		Date:                expense.Date,
		Category:            expense.Category,
		Amount:              expense.Amount,
		Budget:              expense.Budget,
		Description:         expense.Description,
		Recurring:           expense.Recurring,
		IsRecurringInstance: expense.IsRecurringInstance,
		TemplateID:          expense.TemplateID,
		CreatedAt:           expense.CreatedAt,
		UpdatedAt:           expense.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}
