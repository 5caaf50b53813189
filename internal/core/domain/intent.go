package domain

import "errors"

// IntentKind classifies a purchase intent.
type IntentKind string

const (
	IntentDataPackage  IntentKind = "data_package"
	IntentDocument     IntentKind = "document"
	IntentSubscription IntentKind = "subscription"
)

var (
	ErrNoPendingIntent = errors.New("no purchase awaiting confirmation")
	ErrIntentMismatch  = errors.New("intent does not match the pending confirmation")
)

// Money is an amount in a single currency.
type Money struct {
	Amount   int64    `json:"amount"`
	Currency Currency `json:"currency"`
}

// Effect is the signed state delta applied when an intent succeeds.
type Effect struct {
	Cash   int64 `json:"cash"`
	Coins  int64 `json:"coins"`
	DataGB int64 `json:"data_gb"`
}

// Apply returns b with the effect added.
func (e Effect) Apply(b Balances) Balances {
	return Balances{
		Coins:  b.Coins + e.Coins,
		Cash:   b.Cash + e.Cash,
		DataGB: b.DataGB + e.DataGB,
	}
}

// CreditOnly reports whether no component of the effect is negative.
func (e Effect) CreditOnly() bool {
	return e.Cash >= 0 && e.Coins >= 0 && e.DataGB >= 0
}

// PurchaseIntent describes a balance mutation the user asked for but has not confirmed.
// Intents are never persisted.
type PurchaseIntent struct {
	ID         string     `json:"id"`
	Kind       IntentKind `json:"kind"`
	Subject    string     `json:"subject"`
	Cost       Money      `json:"cost"`
	Effect     Effect     `json:"effect"`
	DocumentID string     `json:"document_id,omitempty"`
	// SuccessMessage is the notification text used when the intent is applied.
	SuccessMessage string `json:"-"`
}

// Outcome is the resolution of a confirmed intent.
type Outcome struct {
	Intent    PurchaseIntent          `json:"intent"`
	Applied   bool                    `json:"applied"`
	Delta     Effect                  `json:"delta"`
	Rejection *InsufficientFundsError `json:"rejection,omitempty"`
}
