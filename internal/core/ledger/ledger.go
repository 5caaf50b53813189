// Package ledger owns the authoritative balances of one session and applies
// purchase effects all-or-nothing.
//
// A Ledger is not safe for concurrent use; the owning session serializes access.
package ledger

import (
	"fmt"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

type Ledger struct {
	balances domain.Balances
}

// New returns a ledger seeded with the given balances.
func New(initial domain.Balances) (*Ledger, error) {
	if !initial.NonNegative() {
		return nil, fmt.Errorf("new ledger: %w: seed balances must be non-negative", domain.ErrInvalidEffect)
	}
	return &Ledger{balances: initial}, nil
}

// Balances returns a copy of the current balances.
func (l *Ledger) Balances() domain.Balances {
	return l.balances
}

// Evaluate checks that the intent is affordable and applies its effect.
// On rejection the balances are untouched and the error is an
// *domain.InsufficientFundsError.
func (l *Ledger) Evaluate(intent domain.PurchaseIntent) (domain.Effect, error) {
	if intent.Cost.Amount < 0 || !intent.Cost.Currency.Valid() {
		return domain.Effect{}, fmt.Errorf("evaluate %s: %w: bad cost %+v", intent.Kind, domain.ErrInvalidEffect, intent.Cost)
	}

	available := l.balances.Of(intent.Cost.Currency)
	if available < intent.Cost.Amount {
		return domain.Effect{}, &domain.InsufficientFundsError{
			Currency:  intent.Cost.Currency,
			Shortfall: intent.Cost.Amount - available,
		}
	}

	next := intent.Effect.Apply(l.balances)
	if err := shortfall(next); err != nil {
		return domain.Effect{}, err
	}

	l.balances = next
	return intent.Effect, nil
}

// Credit applies a non-negative effect without a cost, e.g. an upload reward.
func (l *Ledger) Credit(effect domain.Effect) error {
	if !effect.CreditOnly() {
		return fmt.Errorf("credit: %w: %+v", domain.ErrInvalidEffect, effect)
	}
	l.balances = effect.Apply(l.balances)
	return nil
}

// shortfall reports the first field of b that went negative.
func shortfall(b domain.Balances) error {
	switch {
	case b.Cash < 0:
		return &domain.InsufficientFundsError{Currency: domain.CurrencyCash, Shortfall: -b.Cash}
	case b.Coins < 0:
		return &domain.InsufficientFundsError{Currency: domain.CurrencyCoins, Shortfall: -b.Coins}
	case b.DataGB < 0:
		return fmt.Errorf("%w: data quota would drop to %d GB", domain.ErrInvalidEffect, b.DataGB)
	}
	return nil
}
