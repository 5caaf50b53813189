// Package gate implements the single-slot confirmation workflow that every
// balance-mutating intent passes through before it reaches the ledger.
package gate

import (
	"errors"
	"fmt"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

// Evaluator applies an intent to the balances.
type Evaluator interface {
	Evaluate(intent domain.PurchaseIntent) (domain.Effect, error)
}

// Notifier surfaces the outcome of a confirmation.
type Notifier interface {
	Notify(message string, severity domain.Severity)
}

// State of the gate.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending_confirmation"
)

const failureMessage = "Purchase could not be completed."

// Option configures a Gate.
type Option func(*Gate)

// KeepOpenOnFailure leaves a rejected intent pending so it can be retried.
func KeepOpenOnFailure(keep bool) Option {
	return func(g *Gate) { g.keepOpenOnFailure = keep }
}

// Gate holds at most one pending intent. It is not safe for concurrent use.
type Gate struct {
	ledger            Evaluator
	sink              Notifier
	keepOpenOnFailure bool
	pending           *domain.PurchaseIntent
}

func New(ledger Evaluator, sink Notifier, opts ...Option) *Gate {
	g := &Gate{ledger: ledger, sink: sink}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State reports whether a confirmation is pending.
func (g *Gate) State() State {
	if g.pending == nil {
		return StateIdle
	}
	return StatePending
}

// Pending returns the intent awaiting confirmation.
func (g *Gate) Pending() (domain.PurchaseIntent, bool) {
	if g.pending == nil {
		return domain.PurchaseIntent{}, false
	}
	return *g.pending, true
}

// Request places intent in the slot. The last request wins: a previously pending
// intent is discarded and returned.
func (g *Gate) Request(intent domain.PurchaseIntent) (replaced *domain.PurchaseIntent) {
	replaced = g.pending
	g.pending = &intent
	return replaced
}

// Cancel discards the pending intent without touching the ledger.
func (g *Gate) Cancel() (domain.PurchaseIntent, bool) {
	if g.pending == nil {
		return domain.PurchaseIntent{}, false
	}
	discarded := *g.pending
	g.pending = nil
	return discarded, true
}

// Confirm evaluates the pending intent when intentID matches it and routes the
// result to the notifier. Insufficient funds is reported in the Outcome, not as
// an error.
func (g *Gate) Confirm(intentID string) (domain.Outcome, error) {
	if g.pending == nil {
		return domain.Outcome{}, domain.ErrNoPendingIntent
	}
	if g.pending.ID != intentID {
		return domain.Outcome{}, fmt.Errorf("confirm %s: %w", intentID, domain.ErrIntentMismatch)
	}

	intent := *g.pending
	out := domain.Outcome{Intent: intent}

	delta, err := g.ledger.Evaluate(intent)
	var funds *domain.InsufficientFundsError
	switch {
	case err == nil:
		out.Applied = true
		out.Delta = delta
		g.sink.Notify(intent.SuccessMessage, domain.SeveritySuccess)
	case errors.As(err, &funds):
		out.Rejection = funds
		g.sink.Notify(funds.UserMessage(), domain.SeverityError)
	default:
		g.pending = nil
		g.sink.Notify(failureMessage, domain.SeverityError)
		return out, fmt.Errorf("confirm %s: %w", intentID, err)
	}

	if out.Applied || !g.keepOpenOnFailure {
		g.pending = nil
	}
	return out, nil
}
