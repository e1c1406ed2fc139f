package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/partner"
	"github.com/lotbook/backend/internal/domain/shared"
)

// PartyBalance is one party's outstanding amount
type PartyBalance struct {
	PartyID     uuid.UUID       `json:"party_id"`
	Name        string          `json:"name"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// BalanceReport aggregates outstanding balances over one party kind
type BalanceReport struct {
	Balances []PartyBalance  `json:"balances"`
	Total    decimal.Decimal `json:"total"`
}

// BalanceService computes receivable and payable aggregates from the ledger.
// It reads outside any transaction scope; the ledger is append-only, so a
// plain read gives a consistent snapshot.
type BalanceService struct {
	entries  ledger.EntryRepository
	registry partner.Registry
	logger   *zap.Logger
}

// NewBalanceService creates a balance service
func NewBalanceService(entries ledger.EntryRepository, registry partner.Registry, logger *zap.Logger) *BalanceService {
	return &BalanceService{
		entries:  entries,
		registry: registry,
		logger:   logger,
	}
}

// AggregateReceivables returns every client's outstanding debt to the house.
// Clients with nothing outstanding are omitted.
func (s *BalanceService) AggregateReceivables(ctx context.Context) (*BalanceReport, error) {
	return s.aggregate(ctx, partner.PartyKindClient, ledger.ClientReceivable)
}

// AggregatePayables returns the house's outstanding debt to every supplier.
// Suppliers with nothing outstanding are omitted.
func (s *BalanceService) AggregatePayables(ctx context.Context) (*BalanceReport, error) {
	return s.aggregate(ctx, partner.PartyKindSupplier, ledger.SupplierPayable)
}

// ReceivableFor computes one client's outstanding amount
func (s *BalanceService) ReceivableFor(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	return s.balanceFor(ctx, clientID, ledger.ClientReceivable)
}

// PayableFor computes the outstanding amount owed to one supplier
func (s *BalanceService) PayableFor(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	return s.balanceFor(ctx, supplierID, ledger.SupplierPayable)
}

func (s *BalanceService) aggregate(ctx context.Context, kind partner.PartyKind, compute func(uuid.UUID, []ledger.Entry) decimal.Decimal) (*BalanceReport, error) {
	parties, err := s.registry.FindByKind(ctx, kind)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	report := &BalanceReport{
		Balances: make([]PartyBalance, 0, len(parties)),
		Total:    decimal.Zero,
	}
	for _, party := range parties {
		entries, err := s.entries.FindByParty(ctx, party.ID)
		if err != nil {
			return nil, err
		}
		outstanding := compute(party.ID, entries)
		if outstanding.LessThanOrEqual(decimal.Zero) {
			continue
		}
		report.Balances = append(report.Balances, PartyBalance{
			PartyID:     party.ID,
			Name:        party.Name,
			Outstanding: outstanding,
		})
		report.Total = report.Total.Add(outstanding)
	}

	s.logger.Debug("balance aggregation computed",
		zap.String("kind", kind.String()),
		zap.Int("parties", len(parties)),
		zap.Int("outstanding", len(report.Balances)),
		zap.String("total", report.Total.String()))
	return report, nil
}

func (s *BalanceService) balanceFor(ctx context.Context, partyID uuid.UUID, compute func(uuid.UUID, []ledger.Entry) decimal.Decimal) (decimal.Decimal, error) {
	exists, err := s.registry.Exists(ctx, partyID)
	if err != nil {
		return decimal.Zero, shared.NewStorageError(err)
	}
	if !exists {
		return decimal.Zero, shared.NewDomainErrorf(shared.CodePartyNotFound, "Party %s is not registered", partyID)
	}

	entries, err := s.entries.FindByParty(ctx, partyID)
	if err != nil {
		return decimal.Zero, err
	}
	return compute(partyID, entries), nil
}
