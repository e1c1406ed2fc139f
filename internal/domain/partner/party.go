package partner

import (
	"github.com/lotbook/backend/internal/domain/shared"
)

// PartyKind classifies the external parties the ledger deals with
type PartyKind string

const (
	PartyKindClient   PartyKind = "CLIENT"
	PartyKindSupplier PartyKind = "SUPPLIER"
	PartyKindUser     PartyKind = "USER" // internal user carrying a balance
)

// IsValid checks if the kind is a valid PartyKind
func (k PartyKind) IsValid() bool {
	switch k {
	case PartyKindClient, PartyKindSupplier, PartyKindUser:
		return true
	}
	return false
}

// String returns the string representation
func (k PartyKind) String() string {
	return string(k)
}

// Party is a counterparty known to the registry. The engine does not own
// party CRUD; it only resolves and displays parties.
type Party struct {
	shared.BaseEntity
	Kind   PartyKind
	Name   string
	Active bool
}

// NewParty creates an active party
func NewParty(kind PartyKind, name string) (*Party, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid party kind")
	}
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Party name cannot be empty")
	}
	return &Party{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       kind,
		Name:       name,
		Active:     true,
	}, nil
}
