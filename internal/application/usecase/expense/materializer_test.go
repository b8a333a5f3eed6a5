package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

var testCategories = []string{"Marketing", "Dues", "Mileage", "Office"}

func seedTemplate(t *testing.T, repo *memoryExpenseRepo, agentID uuid.UUID, start time.Time, amount int64, category string) *entity.Expense {
	t.Helper()
	template := entity.NewExpense(agentID, start, category, decimal.NewFromInt(amount), nil, "monthly spend", true)
	if err := repo.Create(context.Background(), template); err != nil {
		t.Fatalf("seed template error = %v", err)
	}
	return template
}

func TestMaterializeMonth(t *testing.T) {
	ctx := context.Background()
	agentID := uuid.New()

	t.Run("covers template month through December", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		m := NewRecurringMaterializer(repo)

		template := seedTemplate(t, repo, agentID,
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 200, "Marketing")

		for month := time.January; month <= time.December; month++ {
			if err := m.MaterializeMonth(ctx, agentID, 2025, month); err != nil {
				t.Fatalf("MaterializeMonth(%s) error = %v", month, err)
			}
		}
		if err := m.MaterializeMonth(ctx, agentID, 2026, time.January); err != nil {
			t.Fatalf("MaterializeMonth(2026-01) error = %v", err)
		}

		for month := time.January; month <= time.December; month++ {
			instances, err := repo.FindByAgentAndMonth(ctx, agentID, 2025, month)
			if err != nil {
				t.Fatalf("FindByAgentAndMonth error = %v", err)
			}
			want := 0
			if month >= time.March {
				want = 1
			}
			if len(instances) != want {
				t.Errorf("instances in 2025-%02d = %d, want %d", int(month), len(instances), want)
			}
		}

		next, err := repo.FindByAgentAndMonth(ctx, agentID, 2026, time.January)
		if err != nil {
			t.Fatalf("FindByAgentAndMonth error = %v", err)
		}
		if len(next) != 0 {
			t.Errorf("instances in 2026-01 = %d, want 0", len(next))
		}

		march, _ := repo.FindByAgentAndMonth(ctx, agentID, 2025, time.March)
		instance := march[0]
		if !instance.IsRecurringInstance {
			t.Error("IsRecurringInstance = false, want true")
		}
		if instance.TemplateID == nil || *instance.TemplateID != template.ID {
			t.Error("TemplateID does not point at the template")
		}
		if got, want := instance.Amount, decimal.NewFromInt(200); !got.Equal(want) {
			t.Errorf("Amount = %s, want %s", got, want)
		}
		if instance.Date.Day() != 10 {
			t.Errorf("instance day = %d, want 10", instance.Date.Day())
		}
	})

	t.Run("repeat materialization is idempotent", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		m := NewRecurringMaterializer(repo)

		seedTemplate(t, repo, agentID,
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 200, "Marketing")

		for i := 0; i < 3; i++ {
			if err := m.MaterializeMonth(ctx, agentID, 2025, time.June); err != nil {
				t.Fatalf("MaterializeMonth error = %v", err)
			}
		}

		instances, err := repo.FindByAgentAndMonth(ctx, agentID, 2025, time.June)
		if err != nil {
			t.Fatalf("FindByAgentAndMonth error = %v", err)
		}
		if len(instances) != 1 {
			t.Errorf("instances = %d, want 1", len(instances))
		}
	})

	t.Run("deleted instance stays deleted", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		m := NewRecurringMaterializer(repo)

		template := seedTemplate(t, repo, agentID,
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 200, "Marketing")

		if err := m.MaterializeMonth(ctx, agentID, 2025, time.June); err != nil {
			t.Fatalf("MaterializeMonth error = %v", err)
		}
		instanceID := entity.RecurringInstanceID(template.ID, 2025, time.June)
		if err := repo.Delete(ctx, instanceID); err != nil {
			t.Fatalf("Delete error = %v", err)
		}

		if err := m.MaterializeMonth(ctx, agentID, 2025, time.June); err != nil {
			t.Fatalf("MaterializeMonth error = %v", err)
		}

		instances, err := repo.FindByAgentAndMonth(ctx, agentID, 2025, time.June)
		if err != nil {
			t.Fatalf("FindByAgentAndMonth error = %v", err)
		}
		if len(instances) != 0 {
			t.Errorf("instances after delete = %d, want 0", len(instances))
		}
	})

	t.Run("deleted template stops future materialization", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		m := NewRecurringMaterializer(repo)

		template := seedTemplate(t, repo, agentID,
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 200, "Marketing")

		if err := m.MaterializeMonth(ctx, agentID, 2025, time.April); err != nil {
			t.Fatalf("MaterializeMonth error = %v", err)
		}
		if err := repo.Delete(ctx, template.ID); err != nil {
			t.Fatalf("Delete error = %v", err)
		}
		if err := m.MaterializeMonth(ctx, agentID, 2025, time.May); err != nil {
			t.Fatalf("MaterializeMonth error = %v", err)
		}

		april, _ := repo.FindByAgentAndMonth(ctx, agentID, 2025, time.April)
		if len(april) != 1 {
			t.Errorf("April instances = %d, want 1 (past instances untouched)", len(april))
		}
		may, _ := repo.FindByAgentAndMonth(ctx, agentID, 2025, time.May)
		if len(may) != 0 {
			t.Errorf("May instances = %d, want 0", len(may))
		}
	})

	t.Run("day clamps to shorter months", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		m := NewRecurringMaterializer(repo)

		seedTemplate(t, repo, agentID,
			time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), 75, "Dues")

		if err := m.MaterializeMonth(ctx, agentID, 2025, time.February); err != nil {
			t.Fatalf("MaterializeMonth error = %v", err)
		}

		february, _ := repo.FindByAgentAndMonth(ctx, agentID, 2025, time.February)
		if len(february) != 1 {
			t.Fatalf("February instances = %d, want 1", len(february))
		}
		if february[0].Date.Day() != 28 {
			t.Errorf("instance day = %d, want 28", february[0].Date.Day())
		}
	})

	t.Run("template edits apply to later months only", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		m := NewRecurringMaterializer(repo)

		template := seedTemplate(t, repo, agentID,
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 200, "Marketing")

		if err := m.MaterializeMonth(ctx, agentID, 2025, time.April); err != nil {
			t.Fatalf("MaterializeMonth error = %v", err)
		}

		template.Amount = decimal.NewFromInt(350)
		if err := repo.Update(ctx, template); err != nil {
			t.Fatalf("Update error = %v", err)
		}

		if err := m.MaterializeMonth(ctx, agentID, 2025, time.May); err != nil {
			t.Fatalf("MaterializeMonth error = %v", err)
		}

		april, _ := repo.FindByAgentAndMonth(ctx, agentID, 2025, time.April)
		if got, want := april[0].Amount, decimal.NewFromInt(200); !got.Equal(want) {
			t.Errorf("April amount = %s, want %s (materialized before the edit)", got, want)
		}
		may, _ := repo.FindByAgentAndMonth(ctx, agentID, 2025, time.May)
		if got, want := may[0].Amount, decimal.NewFromInt(350); !got.Equal(want) {
			t.Errorf("May amount = %s, want %s", got, want)
		}
	})
}
