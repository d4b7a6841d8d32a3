package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core/enrollment"
	"github.com/trezcool/academia/core/payout"
	"github.com/trezcool/academia/core/plan"
	"github.com/trezcool/academia/core/pricing"
	"github.com/trezcool/academia/core/professor"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSeed(t *testing.T) {
	db := Open().Seed()
	ctx := context.Background()

	currencies, err := NewCurrencyRepository(db).QueryCurrencies(ctx)
	require.NoError(t, err)
	assert.Len(t, currencies, 4)

	// callers cannot alter the catalog
	currencies[0].Name = "changed"
	again, err := NewCurrencyRepository(db).QueryCurrencies(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dólar", again[0].Name)

	p, err := NewPlanRepository(db).GetPlan(ctx, 2)
	require.NoError(t, err)
	assert.True(t, p.Tier.Group.Equal(dec("42.5")))
	_, err = NewPlanRepository(db).GetPlan(ctx, 9)
	assert.Equal(t, plan.ErrNotFound, err)

	_, err = NewProfessorRepository(db).GetProfessor(ctx, 9)
	assert.Equal(t, professor.ErrNotFound, err)
}

func TestEnrollmentRepository(t *testing.T) {
	repo := NewEnrollmentRepository(Open())
	ctx := context.Background()
	p := plan.Plan{ID: 1, Tier: pricing.Tier{Single: dec("40"), Couple: dec("35"), Group: dec("30")}}

	first, err := repo.CreateEnrollment(ctx, enrollment.NewPayload([]int{1}, p.ID, 1, p.Tier))
	require.NoError(t, err)
	second, err := repo.CreateEnrollment(ctx, enrollment.NewPayload([]int{2, 3}, p.ID, 1, p.Tier))
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)

	updated, err := repo.UpdateEnrollment(ctx, first.ID, enrollment.NewPayload([]int{1, 4}, p.ID, 2, p.Tier))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, updated.StudentIDs)
	assert.Equal(t, 2, updated.ProfessorID)
	assert.Equal(t, pricing.TypeCouple, updated.EnrollmentType)
	assert.True(t, updated.TotalAmount.Equal(dec("70")))

	_, err = repo.UpdateEnrollment(ctx, 99, enrollment.NewPayload([]int{1}, p.ID, 1, p.Tier))
	assert.Equal(t, enrollment.ErrNotFound, err)
}

func TestPayoutRepository_computesTotals(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }
	defer func() { NowFunc = func() time.Time { return time.Now().UTC() } }()

	items := []payout.LineItem{
		payout.NewClassItem(7, dec("3"), dec("20")),
		payout.NewClassItem(8, dec("0"), dec("20")),
		payout.NewBonusItem("bonus", dec("15")),
	}
	pay, err := NewPayoutRepository(Open()).CreatePayout(context.Background(), payout.NewPayload(1, items, dec("10")))
	require.NoError(t, err)

	assert.Equal(t, 1, pay.ID)
	assert.Len(t, pay.Details, 2)
	assert.True(t, pay.Subtotal.Equal(dec("75")), "subtotal = %v", pay.Subtotal)
	assert.True(t, pay.Total.Equal(dec("65")), "total = %v", pay.Total)
	assert.Equal(t, now, pay.CreatedAt)
}
