package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents one business outflow, or a recurring template.
//
// A template (Recurring == true) is never part of a month's expense list;
// only its materialized instances are. Instances carry a copy of the
// template's fields as they were at materialization time.
type Expense struct {
	ID                  uuid.UUID
	AgentID             uuid.UUID
	Date                time.Time
	Category            string
	Amount              decimal.Decimal
	Budget              *decimal.Decimal // Optional monthly budget for the category
	Description         string
	Recurring           bool       // True for templates
	IsRecurringInstance bool       // True only for materialized copies
	TemplateID          *uuid.UUID // Set on instances, points at the template
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // Soft-delete support
}

// NewExpense creates a new Expense entity (a concrete expense or a template).
func NewExpense(
	agentID uuid.UUID,
	date time.Time,
	category string,
	amount decimal.Decimal,
	budget *decimal.Decimal,
	description string,
	recurring bool,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		AgentID:     agentID,
		Date:        date,
		Category:    category,
		Amount:      amount,
		Budget:      budget,
		Description: description,
		Recurring:   recurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MaterializeInstance produces the concrete instance of a recurring template
// for the given month. The instance ID is derived deterministically from the
// template ID and the month, so materializing the same (template, month) pair
// twice always yields the same identity.
func (e *Expense) MaterializeInstance(year int, month time.Month) *Expense {
	day := e.Date.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	now := time.Now().UTC()
	templateID := e.ID

	return &Expense{
		ID:                  RecurringInstanceID(e.ID, year, month),
		AgentID:             e.AgentID,
		Date:                time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Category:            e.Category,
		Amount:              e.Amount,
		Budget:              e.Budget,
		Description:         e.Description,
		Recurring:           false,
		IsRecurringInstance: true,
		TemplateID:          &templateID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// RecurringInstanceID returns the stable identity of a (template, month)
// materialization, a v5 UUID in the template's namespace.
func RecurringInstanceID(templateID uuid.UUID, year int, month time.Month) uuid.UUID {
	return uuid.NewSHA1(templateID, []byte(fmt.Sprintf("%04d-%02d", year, month)))
}

// CoversMonth reports whether the given month falls inside a template's
// materialization window: from the template's start date through December of
// the same calendar year. Enrollment does not roll into the next year.
func (e *Expense) CoversMonth(year int, month time.Month) bool {
	if year != e.Date.Year() {
		return false
	}
	return month >= e.Date.Month()
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
