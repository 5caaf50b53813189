package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

const receiptsCollection = "purchase_receipts"

// AuditRepository implements ports.PurchaseAuditor using MongoDB.
// Receipts are append-only and never read back by the service.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(receiptsCollection)}
}

// Record appends a receipt to the purchase_receipts collection.
func (r *AuditRepository) Record(ctx context.Context, receipt domain.Receipt) error {
	if _, err := r.coll.InsertOne(ctx, receiptDocument(receipt)); err != nil {
		return fmt.Errorf("insert receipt %s: %w", receipt.IntentID, err)
	}
	return nil
}

func receiptDocument(r domain.Receipt) bson.M {
	return bson.M{
		"session_id": r.SessionID,
		"intent_id":  r.IntentID,
		"kind":       string(r.Kind),
		"subject":    r.Subject,
		"cost": bson.M{
			"amount":   r.Cost.Amount,
			"currency": string(r.Cost.Currency),
		},
		"effect": bson.M{
			"cash":    r.Effect.Cash,
			"coins":   r.Effect.Coins,
			"data_gb": r.Effect.DataGB,
		},
		"balances_after": bson.M{
			"cash":    r.Balances.Cash,
			"coins":   r.Balances.Coins,
			"data_gb": r.Balances.DataGB,
		},
		"applied_at": r.AppliedAt.UTC(),
	}
}
