package purchase

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseLogRepository is the persistence contract for purchase logs
type PurchaseLogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseLog, error)
	Save(ctx context.Context, log *PurchaseLog) error
}
