package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

// packageIntent debits the pack price in cash and credits its coins and data.
func packageIntent(pkg domain.DataPackage) domain.PurchaseIntent {
	return domain.PurchaseIntent{
		ID:      uuid.NewString(),
		Kind:    domain.IntentDataPackage,
		Subject: pkg.Name,
		Cost:    domain.Money{Amount: pkg.PriceCash, Currency: domain.CurrencyCash},
		Effect: domain.Effect{
			Cash:   -pkg.PriceCash,
			Coins:  pkg.CoinsEarned,
			DataGB: pkg.DataGB,
		},
		SuccessMessage: fmt.Sprintf("Purchase successful! Added %dGB and earned %d RYZE COINS.", pkg.DataGB, pkg.CoinsEarned),
	}
}

// documentIntent always spends coins.
func documentIntent(doc domain.Document) domain.PurchaseIntent {
	return domain.PurchaseIntent{
		ID:             uuid.NewString(),
		Kind:           domain.IntentDocument,
		Subject:        doc.Title,
		Cost:           domain.Money{Amount: doc.PriceCoins, Currency: domain.CurrencyCoins},
		Effect:         domain.Effect{Coins: -doc.PriceCoins},
		DocumentID:     doc.ID,
		SuccessMessage: fmt.Sprintf("Purchased %q for %d RYZE COINS.", doc.Title, doc.PriceCoins),
	}
}

// subscriptionIntent spends the plan price in the currency the caller picked.
func subscriptionIntent(svc domain.SubscriptionService, plan domain.SubscriptionPlan, currency domain.Currency) domain.PurchaseIntent {
	cost := plan.Price(currency)
	effect := domain.Effect{Cash: -cost.Amount}
	via := "via BDT"
	if currency == domain.CurrencyCoins {
		effect = domain.Effect{Coins: -cost.Amount}
		via = "using RYZE COINS"
	}
	return domain.PurchaseIntent{
		ID:             uuid.NewString(),
		Kind:           domain.IntentSubscription,
		Subject:        svc.Name + " " + plan.Name,
		Cost:           cost,
		Effect:         effect,
		SuccessMessage: fmt.Sprintf("%s %s activated %s.", svc.Name, plan.Name, via),
	}
}
