package deal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

func TestUpdateDeal(t *testing.T) {
	ctx := context.Background()
	agentID := uuid.New()

	seed := func(t *testing.T) (*memoryDealRepo, *memoryCapConfigRepo, *noopCache, *UpdateDealUseCase, uuid.UUID) {
		t.Helper()
		dealRepo, capRepo, cache, recomputer := newTestFixture()
		create := NewCreateDealUseCase(dealRepo, recomputer, cache, testLeadSources)

		capRepo.Upsert(ctx, newCapConfig(agentID, 2025, 50000))

		out, err := create.Execute(ctx, CreateDealInput{
			AgentID:           agentID,
			HouseAddress:      "742 Evergreen Terrace",
			AmountSoldFor:     decimal.NewFromInt(500000),
			CommissionPercent: decimal.NewFromInt(6),
			LeadSource:        "referral",
			ClosingDate:       time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("seed create error = %v", err)
		}
		return dealRepo, capRepo, cache, NewUpdateDealUseCase(dealRepo, recomputer, cache, testLeadSources), out.Deal.ID
	}

	t.Run("recomputes derived fields after amount change", func(t *testing.T) {
		_, _, _, uc, dealID := seed(t)

		amount := decimal.NewFromInt(200000)
		out, err := uc.Execute(ctx, UpdateDealInput{
			ID:            dealID,
			AgentID:       agentID,
			AmountSoldFor: &amount,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		// 200k at 6% is 12000 pre-cap, all consumed by the open 50000 cap.
		if got, want := out.Deal.CapAmount, decimal.NewFromInt(12000); !got.Equal(want) {
			t.Errorf("CapAmount = %s, want %s", got, want)
		}
		if !out.Deal.FinalIncome.IsZero() {
			t.Errorf("FinalIncome = %s, want 0", out.Deal.FinalIncome)
		}
		if got, want := out.Progress.PaidSoFar, decimal.NewFromInt(12000); !got.Equal(want) {
			t.Errorf("PaidSoFar = %s, want %s", got, want)
		}
	})

	t.Run("moving the closing year replays both periods", func(t *testing.T) {
		dealRepo, capRepo, _, uc, dealID := seed(t)

		capRepo.Upsert(ctx, newCapConfig(agentID, 2026, 10000))

		newClosing := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
		out, err := uc.Execute(ctx, UpdateDealInput{
			ID:          dealID,
			AgentID:     agentID,
			ClosingDate: &newClosing,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		// The deal now consumes the 2026 cap.
		if got, want := out.Deal.CapAmount, decimal.NewFromInt(10000); !got.Equal(want) {
			t.Errorf("CapAmount = %s, want %s", got, want)
		}
		if got, want := out.Deal.FinalIncome, decimal.NewFromInt(20000); !got.Equal(want) {
			t.Errorf("FinalIncome = %s, want %s", got, want)
		}

		// 2025 is left empty after the move.
		remaining, err := dealRepo.FindByAgentAndYear(ctx, agentID, 2025)
		if err != nil {
			t.Fatalf("FindByAgentAndYear error = %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("deals left in 2025 = %d, want 0", len(remaining))
		}
	})

	t.Run("rejects update of another agent's deal", func(t *testing.T) {
		_, _, _, uc, dealID := seed(t)

		address := "1 Intruder Way"
		_, err := uc.Execute(ctx, UpdateDealInput{
			ID:           dealID,
			AgentID:      uuid.New(),
			HouseAddress: &address,
		})

		var dealErr *domainerror.DealError
		if !errors.As(err, &dealErr) {
			t.Fatalf("Execute() error = %v, want DealError", err)
		}
		if dealErr.Code != domainerror.ErrCodeNotAuthorizedDeal {
			t.Errorf("error code = %s, want %s", dealErr.Code, domainerror.ErrCodeNotAuthorizedDeal)
		}
	})

	t.Run("unknown deal returns not found", func(t *testing.T) {
		_, _, _, uc, _ := seed(t)

		address := "1 Nowhere Ln"
		_, err := uc.Execute(ctx, UpdateDealInput{
			ID:           uuid.New(),
			AgentID:      agentID,
			HouseAddress: &address,
		})

		var dealErr *domainerror.DealError
		if !errors.As(err, &dealErr) {
			t.Fatalf("Execute() error = %v, want DealError", err)
		}
		if dealErr.Code != domainerror.ErrCodeDealNotFound {
			t.Errorf("error code = %s, want %s", dealErr.Code, domainerror.ErrCodeDealNotFound)
		}
	})
}

func TestDeleteDeal(t *testing.T) {
	ctx := context.Background()
	agentID := uuid.New()

	dealRepo, capRepo, cache, recomputer := newTestFixture()
	create := NewCreateDealUseCase(dealRepo, recomputer, cache, testLeadSources)
	uc := NewDeleteDealUseCase(dealRepo, recomputer, cache)

	capRepo.Upsert(ctx, newCapConfig(agentID, 2025, 50000))

	first, err := create.Execute(ctx, CreateDealInput{
		AgentID:           agentID,
		HouseAddress:      "1 First St",
		AmountSoldFor:     decimal.NewFromInt(1000000),
		CommissionPercent: decimal.NewFromInt(5),
		LeadSource:        "zillow",
		ClosingDate:       time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed create error = %v", err)
	}
	second, err := create.Execute(ctx, CreateDealInput{
		AgentID:           agentID,
		HouseAddress:      "2 Second St",
		AmountSoldFor:     decimal.NewFromInt(500000),
		CommissionPercent: decimal.NewFromInt(6),
		LeadSource:        "zillow",
		ClosingDate:       time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed create error = %v", err)
	}

	// Cap is full after the first deal: the second kept its whole 30000.
	if !second.Progress.IsComplete {
		t.Fatal("seed Progress.IsComplete = false, want true")
	}

	if err := uc.Execute(ctx, DeleteDealInput{ID: first.Deal.ID, AgentID: agentID}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// With the first deal gone its freed cap applies to the second.
	reloaded, err := dealRepo.FindByID(ctx, second.Deal.ID)
	if err != nil {
		t.Fatalf("FindByID error = %v", err)
	}
	if got, want := reloaded.CapAmount, decimal.NewFromInt(30000); !got.Equal(want) {
		t.Errorf("CapAmount = %s, want %s", got, want)
	}
	if !reloaded.FinalIncome.IsZero() {
		t.Errorf("FinalIncome = %s, want 0", reloaded.FinalIncome)
	}

	if _, err := dealRepo.FindByID(ctx, first.Deal.ID); !errors.Is(err, domainerror.ErrDealNotFound) {
		t.Errorf("deleted deal lookup error = %v, want ErrDealNotFound", err)
	}
}
