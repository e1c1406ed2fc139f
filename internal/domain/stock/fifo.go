package stock

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotbook/backend/internal/domain/shared"
)

// LotConsumption describes how much a single lot contributes to a plan
type LotConsumption struct {
	LotID          uuid.UUID
	Amount         decimal.Decimal // amount taken from this lot
	RemainingAfter decimal.Decimal // amount left in the lot after taking
	Depleted       bool            // true if the lot is fully consumed by the plan
}

// AllocationPlan is the result of planning a requested quantity against a
// product's lots. It is a pure calculation; ApplyPlan performs the mutation.
type AllocationPlan struct {
	Consumptions   []LotConsumption
	TotalAllocated decimal.Decimal
	Shortfall      decimal.Decimal // requested amount that could not be covered
	FullyAllocated bool
}

// PlanFIFO calculates which lots satisfy the requested quantity, draining the
// oldest lots first (creation order). Lots without stock are skipped. The
// returned plan covers as much of the request as the lots allow; callers that
// require full coverage must check FullyAllocated.
func PlanFIFO(requested decimal.Decimal, lots []Lot) (*AllocationPlan, error) {
	if requested.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Requested amount must be positive")
	}

	available := make([]Lot, 0, len(lots))
	for _, lot := range lots {
		if lot.HasStock() {
			available = append(available, lot)
		}
	}
	sort.Slice(available, func(i, j int) bool {
		return available[i].CreatedAt.Before(available[j].CreatedAt)
	})

	plan := &AllocationPlan{
		Consumptions: make([]LotConsumption, 0, len(available)),
	}
	remaining := requested

	for _, lot := range available {
		if remaining.IsZero() {
			break
		}

		take := decimal.Min(remaining, lot.AmountRemaining)
		left := lot.AmountRemaining.Sub(take)
		plan.Consumptions = append(plan.Consumptions, LotConsumption{
			LotID:          lot.ID,
			Amount:         take,
			RemainingAfter: left,
			Depleted:       left.IsZero(),
		})
		plan.TotalAllocated = plan.TotalAllocated.Add(take)
		remaining = remaining.Sub(take)
	}

	plan.Shortfall = remaining
	plan.FullyAllocated = remaining.IsZero()
	return plan, nil
}

// ApplyPlan executes a plan against the given lots, consuming the planned
// amount from each. The lots must include every lot the plan references.
func ApplyPlan(lots []*Lot, plan *AllocationPlan) error {
	if plan == nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Allocation plan cannot be nil")
	}

	byID := make(map[uuid.UUID]*Lot, len(lots))
	for _, lot := range lots {
		byID[lot.ID] = lot
	}

	for _, c := range plan.Consumptions {
		lot, ok := byID[c.LotID]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeAllocationViolation,
				"Planned lot %s is not present", c.LotID)
		}
		if err := lot.Consume(c.Amount); err != nil {
			return err
		}
		if !lot.AmountRemaining.Equal(c.RemainingAfter) {
			return shared.NewDomainErrorf(shared.CodeAllocationViolation,
				"Lot %s remaining %s does not match planned %s", lot.ID, lot.AmountRemaining, c.RemainingAfter)
		}
	}
	return nil
}
