package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

var seed = domain.Balances{Coins: 598240, Cash: 1500, DataGB: 40}

func fly() domain.PurchaseIntent {
	return domain.PurchaseIntent{
		ID:     "i-1",
		Kind:   domain.IntentDataPackage,
		Cost:   domain.Money{Amount: 497, Currency: domain.CurrencyCash},
		Effect: domain.Effect{Cash: -497, Coins: 39535, DataGB: 60},
	}
}

func TestNew_RejectsNegativeSeed(t *testing.T) {
	_, err := New(domain.Balances{Cash: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidEffect)
}

func TestEvaluate_AppliesEffect(t *testing.T) {
	l, err := New(seed)
	require.NoError(t, err)

	delta, err := l.Evaluate(fly())
	require.NoError(t, err)

	assert.Equal(t, fly().Effect, delta)
	assert.Equal(t, domain.Balances{Coins: 637775, Cash: 1003, DataGB: 100}, l.Balances())
}

func TestEvaluate_InsufficientFundsLeavesBalances(t *testing.T) {
	l, err := New(domain.Balances{Coins: 10, Cash: 100, DataGB: 1})
	require.NoError(t, err)

	_, err = l.Evaluate(fly())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	var funds *domain.InsufficientFundsError
	require.True(t, errors.As(err, &funds))
	assert.Equal(t, domain.CurrencyCash, funds.Currency)
	assert.Equal(t, int64(397), funds.Shortfall)
	assert.Equal(t, domain.Balances{Coins: 10, Cash: 100, DataGB: 1}, l.Balances())
}

func TestEvaluate_RejectionIsIdempotent(t *testing.T) {
	start := domain.Balances{Coins: 30, Cash: 0, DataGB: 0}
	l, err := New(start)
	require.NoError(t, err)

	doc := domain.PurchaseIntent{
		Kind:   domain.IntentDocument,
		Cost:   domain.Money{Amount: 50, Currency: domain.CurrencyCoins},
		Effect: domain.Effect{Coins: -50},
	}
	for range 3 {
		_, err := l.Evaluate(doc)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, start, l.Balances())
	}
}

func TestEvaluate_ExactBalanceIsAffordable(t *testing.T) {
	l, err := New(domain.Balances{Coins: 50})
	require.NoError(t, err)

	_, err = l.Evaluate(domain.PurchaseIntent{
		Cost:   domain.Money{Amount: 50, Currency: domain.CurrencyCoins},
		Effect: domain.Effect{Coins: -50},
	})
	require.NoError(t, err)
	assert.Zero(t, l.Balances().Coins)
}

func TestEvaluate_EffectBeyondCostIsRejectedAtomically(t *testing.T) {
	l, err := New(domain.Balances{Coins: 100, Cash: 10})
	require.NoError(t, err)

	// Cost says 5 cash but the effect also takes 20 cash.
	_, err = l.Evaluate(domain.PurchaseIntent{
		Cost:   domain.Money{Amount: 5, Currency: domain.CurrencyCash},
		Effect: domain.Effect{Cash: -20, Coins: 50},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, domain.Balances{Coins: 100, Cash: 10}, l.Balances())
}

func TestEvaluate_InvalidCost(t *testing.T) {
	l, err := New(seed)
	require.NoError(t, err)

	tests := []struct {
		name string
		cost domain.Money
	}{
		{"negative amount", domain.Money{Amount: -1, Currency: domain.CurrencyCash}},
		{"unknown currency", domain.Money{Amount: 1, Currency: "gold"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Evaluate(domain.PurchaseIntent{Cost: tt.cost})
			assert.ErrorIs(t, err, domain.ErrInvalidEffect)
			assert.Equal(t, seed, l.Balances())
		})
	}
}

func TestCredit(t *testing.T) {
	l, err := New(seed)
	require.NoError(t, err)

	require.NoError(t, l.Credit(domain.Effect{Coins: 80}))
	assert.Equal(t, seed.Coins+80, l.Balances().Coins)

	err = l.Credit(domain.Effect{Coins: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidEffect)
	assert.Equal(t, seed.Coins+80, l.Balances().Coins)
}
