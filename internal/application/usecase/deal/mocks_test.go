package deal

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// In-memory fakes for the adapter interfaces used by the deal use cases.

type memoryDealRepo struct {
	deals map[uuid.UUID]*entity.Deal
}

func newMemoryDealRepo() *memoryDealRepo {
	return &memoryDealRepo{deals: make(map[uuid.UUID]*entity.Deal)}
}

func (r *memoryDealRepo) Create(_ context.Context, deal *entity.Deal) error {
	stored := *deal
	r.deals[deal.ID] = &stored
	return nil
}

func (r *memoryDealRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Deal, error) {
	deal, ok := r.deals[id]
	if !ok || deal.DeletedAt != nil {
		return nil, domainerror.ErrDealNotFound
	}
	found := *deal
	return &found, nil
}

func (r *memoryDealRepo) FindByAgent(_ context.Context, agentID uuid.UUID) ([]*entity.Deal, error) {
	var result []*entity.Deal
	for _, deal := range r.deals {
		if deal.AgentID == agentID && deal.DeletedAt == nil {
			found := *deal
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ClosingDate.After(result[j].ClosingDate)
	})
	return result, nil
}

func (r *memoryDealRepo) FindByAgentAndYear(_ context.Context, agentID uuid.UUID, year int) ([]*entity.Deal, error) {
	var result []*entity.Deal
	for _, deal := range r.deals {
		if deal.AgentID == agentID && deal.DeletedAt == nil && deal.ClosingDate.Year() == year {
			found := *deal
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ClosingDate.Equal(result[j].ClosingDate) {
			return result[i].ClosingDate.Before(result[j].ClosingDate)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (r *memoryDealRepo) FindByAgentAndMonth(_ context.Context, agentID uuid.UUID, year int, month time.Month) ([]*entity.Deal, error) {
	var result []*entity.Deal
	for _, deal := range r.deals {
		if deal.AgentID == agentID && deal.DeletedAt == nil &&
			deal.ClosingDate.Year() == year && deal.ClosingDate.Month() == month {
			found := *deal
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ClosingDate.Before(result[j].ClosingDate)
	})
	return result, nil
}

func (r *memoryDealRepo) Update(_ context.Context, deal *entity.Deal) error {
	if _, ok := r.deals[deal.ID]; !ok {
		return domainerror.ErrDealNotFound
	}
	stored := *deal
	r.deals[deal.ID] = &stored
	return nil
}

func (r *memoryDealRepo) Delete(_ context.Context, id uuid.UUID) error {
	deal, ok := r.deals[id]
	if !ok {
		return domainerror.ErrDealNotFound
	}
	now := time.Now().UTC()
	deal.DeletedAt = &now
	return nil
}

func (r *memoryDealRepo) ApplyDerived(_ context.Context, deals []*entity.Deal) error {
	for _, deal := range deals {
		stored, ok := r.deals[deal.ID]
		if !ok {
			return domainerror.ErrDealNotFound
		}
		stored.CapAmount = deal.CapAmount
		stored.FinalIncome = deal.FinalIncome
	}
	return nil
}

func (r *memoryDealRepo) ExistsByIDAndAgent(_ context.Context, id, agentID uuid.UUID) (bool, error) {
	deal, ok := r.deals[id]
	return ok && deal.DeletedAt == nil && deal.AgentID == agentID, nil
}

type memoryCapConfigRepo struct {
	configs map[string]*entity.CapConfiguration
}

func newMemoryCapConfigRepo() *memoryCapConfigRepo {
	return &memoryCapConfigRepo{configs: make(map[string]*entity.CapConfiguration)}
}

func capConfigKey(agentID uuid.UUID, year int) string {
	return agentID.String() + ":" + strconv.Itoa(year)
}

func (r *memoryCapConfigRepo) FindByAgentAndYear(_ context.Context, agentID uuid.UUID, year int) (*entity.CapConfiguration, error) {
	config, ok := r.configs[capConfigKey(agentID, year)]
	if !ok {
		return nil, domainerror.ErrCapConfigNotFound
	}
	return config, nil
}

func (r *memoryCapConfigRepo) Upsert(_ context.Context, config *entity.CapConfiguration) error {
	r.configs[capConfigKey(config.AgentID, config.Year)] = config
	return nil
}

func newCapConfig(agentID uuid.UUID, year int, totalCap int64) *entity.CapConfiguration {
	return entity.NewCapConfiguration(agentID, year, decimal.NewFromInt(totalCap))
}

type noopLock struct{}

func (noopLock) Release(context.Context) error { return nil }

type noopLocker struct{}

func (noopLocker) Obtain(context.Context, uuid.UUID, int) (adapter.PeriodLock, error) {
	return noopLock{}, nil
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
