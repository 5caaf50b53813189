package ports

import (
	"context"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

// PurchaseAuditor writes applied purchases to an audit trail. Records are never
// read back into a session.
type PurchaseAuditor interface {
	Record(ctx context.Context, receipt domain.Receipt) error
}
