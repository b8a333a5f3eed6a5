package expense

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// In-memory fakes for the adapter interfaces used by the expense use cases.

type memoryExpenseRepo struct {
	expenses map[uuid.UUID]*entity.Expense
}

func newMemoryExpenseRepo() *memoryExpenseRepo {
	return &memoryExpenseRepo{expenses: make(map[uuid.UUID]*entity.Expense)}
}

func (r *memoryExpenseRepo) Create(_ context.Context, expense *entity.Expense) error {
	stored := *expense
	r.expenses[expense.ID] = &stored
	return nil
}

func (r *memoryExpenseRepo) CreateInstanceIfAbsent(_ context.Context, instance *entity.Expense) error {
	// Soft-deleted rows also block the insert.
	if _, ok := r.expenses[instance.ID]; ok {
		return nil
	}
	stored := *instance
	r.expenses[instance.ID] = &stored
	return nil
}

func (r *memoryExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, ok := r.expenses[id]
	if !ok || expense.DeletedAt != nil {
		return nil, domainerror.ErrExpenseNotFound
	}
	found := *expense
	return &found, nil
}

func (r *memoryExpenseRepo) FindByAgent(_ context.Context, agentID uuid.UUID) ([]*entity.Expense, error) {
	var result []*entity.Expense
	for _, expense := range r.expenses {
		if expense.AgentID == agentID && expense.DeletedAt == nil && !expense.Recurring {
			found := *expense
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (r *memoryExpenseRepo) FindByAgentAndMonth(_ context.Context, agentID uuid.UUID, year int, month time.Month) ([]*entity.Expense, error) {
	var result []*entity.Expense
	for _, expense := range r.expenses {
		if expense.AgentID == agentID && expense.DeletedAt == nil && !expense.Recurring &&
			expense.Date.Year() == year && expense.Date.Month() == month {
			found := *expense
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (r *memoryExpenseRepo) FindTemplatesByAgent(_ context.Context, agentID uuid.UUID) ([]*entity.Expense, error) {
	var result []*entity.Expense
	for _, expense := range r.expenses {
		if expense.AgentID == agentID && expense.DeletedAt == nil && expense.Recurring {
			found := *expense
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (r *memoryExpenseRepo) Update(_ context.Context, expense *entity.Expense) error {
	if _, ok := r.expenses[expense.ID]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	stored := *expense
	r.expenses[expense.ID] = &stored
	return nil
}

func (r *memoryExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	expense, ok := r.expenses[id]
	if !ok {
		return domainerror.ErrExpenseNotFound
	}
	now := time.Now().UTC()
	expense.DeletedAt = &now
	return nil
}

func (r *memoryExpenseRepo) ExistsByIDAndAgent(_ context.Context, id, agentID uuid.UUID) (bool, error) {
	expense, ok := r.expenses[id]
	return ok && expense.DeletedAt == nil && expense.AgentID == agentID, nil
}

type noopCache struct {
	invalidations int
}

func (c *noopCache) Get(context.Context, uuid.UUID, int, time.Month) (*entity.MonthlySummary, error) {
	return nil, nil
}

func (c *noopCache) Set(context.Context, uuid.UUID, int, time.Month, *entity.MonthlySummary) error {
	return nil
}

func (c *noopCache) InvalidateAgent(context.Context, uuid.UUID) error {
	c.invalidations++
	return nil
}
