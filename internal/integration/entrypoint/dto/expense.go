package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for creating an expense.
type CreateExpenseRequest struct {
	Date        string           `json:"date" binding:"required"` // YYYY-MM-DD
	Category    string           `json:"category" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Budget      *decimal.Decimal `json:"budget"`
	Description string           `json:"description"`
	Recurring   bool             `json:"recurring"`
}

// UpdateExpenseRequest represents the request body for updating an expense.
// Omitted fields are left unchanged; clear_budget removes the budget.
type UpdateExpenseRequest struct {
	Date        *string          `json:"date"` // YYYY-MM-DD
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Budget      *decimal.Decimal `json:"budget"`
	ClearBudget bool             `json:"clear_budget"`
	Description *string          `json:"description"`
	Recurring   *bool            `json:"recurring"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID                  string           `json:"id"`
	Date                string           `json:"date"`
	Category            string           `json:"category"`
	Amount              decimal.Decimal  `json:"amount"`
	Budget              *decimal.Decimal `json:"budget,omitempty"`
	Description         string           `json:"description,omitempty"`
	Recurring           bool             `json:"recurring"`
	IsRecurringInstance bool             `json:"is_recurring_instance"`
	TemplateID          *string          `json:"template_id,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// ExpenseListResponse represents a list of expenses in API responses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts an Expense entity to an ExpenseResponse.
func ToExpenseResponse(expense *entity.Expense) ExpenseResponse {
	var templateID *string
	if expense.TemplateID != nil {
		id := expense.TemplateID.String()
		templateID = &id
	}

	return ExpenseResponse{
		ID:                  expense.ID.String(),
		Date:                expense.Date.Format(time.DateOnly),
		Category:            expense.Category,
		Amount:              expense.Amount,
		Budget:              expense.Budget,
		Description:         expense.Description,
		Recurring:           expense.Recurring,
		IsRecurringInstance: expense.IsRecurringInstance,
		TemplateID:          templateID,
		CreatedAt:           expense.CreatedAt,
		UpdatedAt:           expense.UpdatedAt,
	}
}

// ToExpenseListResponse converts Expense entities to an ExpenseListResponse.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = ToExpenseResponse(expense)
	}
	return ExpenseListResponse{Expenses: responses}
}
