// Package catalog holds the fixed storefront: data packages, subscription
// services, and the documents every new session's marketplace starts with.
package catalog

import (
	"slices"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

var packages = []domain.DataPackage{
	{ID: "p1", Name: "FLY", Tag: "Recommended", DataGB: 60, VoiceMinutes: 300, PriceCash: 497, CoinsEarned: 39535, ValidityDays: 30, OTTs: []string{"Toffee", "Hoichoi"}},
	{ID: "p2", Name: "BLAZE", Tag: "Most Popular", DataGB: 25, VoiceMinutes: 50, PriceCash: 197, CoinsEarned: 15670, ValidityDays: 7, OTTs: []string{"Toffee", "Hoichoi"}},
	{ID: "p3", Name: "STARTER", Tag: "Popular", DataGB: 7, VoiceMinutes: 0, PriceCash: 97, CoinsEarned: 7716, ValidityDays: 3, OTTs: []string{"Toffee"}},
}

var services = []domain.SubscriptionService{
	{
		ID:   "netflix",
		Name: "Netflix",
		Logo: "https://upload.wikimedia.org/wikipedia/commons/0/08/Netflix_2015_logo.svg",
		Plans: []domain.SubscriptionPlan{
			{Name: "Mobile", PriceCash: 399, PriceCoins: 3990},
			{Name: "Standard", PriceCash: 799, PriceCoins: 7990},
		},
	},
	{
		ID:   "spotify",
		Name: "Spotify",
		Logo: "https://upload.wikimedia.org/wikipedia/commons/1/19/Spotify_logo_without_text.svg",
		Plans: []domain.SubscriptionPlan{
			{Name: "Individual", PriceCash: 199, PriceCoins: 1990},
			{Name: "Duo", PriceCash: 249, PriceCoins: 2490},
		},
	},
	{
		ID:   "prime",
		Name: "Amazon Prime",
		Logo: "https://upload.wikimedia.org/wikipedia/commons/f/f1/Prime_Video.png",
		Plans: []domain.SubscriptionPlan{
			{Name: "Monthly", PriceCash: 299, PriceCoins: 2990},
			{Name: "Annual", PriceCash: 2999, PriceCoins: 29990},
		},
	},
}

var documents = []domain.Document{
	{
		ID:          "1",
		Title:       "Intro to Quantum Physics",
		Author:      "Dr. A. Rahman",
		Description: "Comprehensive notes on Quantum Mechanics basics, wave-particle duality, and Schrödinger equation.",
		Tags:        []string{"physics", "science", "quantum"},
		PriceCoins:  50,
		Downloads:   120,
	},
	{
		ID:          "2",
		Title:       "React JS Advanced Patterns",
		Author:      "Dev Sarah",
		Description: "Deep dive into Hooks, Context API, Performance optimization, and custom hooks design.",
		Tags:        []string{"coding", "javascript", "react"},
		PriceCoins:  100,
		Downloads:   450,
	},
	{
		ID:          "3",
		Title:       "Economics 101 Summary",
		Author:      "Ryze User",
		Description: "Quick revision summary for microeconomics supply and demand curves.",
		Tags:        []string{"economics", "finance"},
		PriceCoins:  0,
		Downloads:   89,
	},
}

// Packages lists the regular data packs.
func Packages() []domain.DataPackage {
	out := make([]domain.DataPackage, len(packages))
	for i, p := range packages {
		p.OTTs = slices.Clone(p.OTTs)
		out[i] = p
	}
	return out
}

// Package finds a regular data pack by id.
func Package(id string) (domain.DataPackage, error) {
	for _, p := range Packages() {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.DataPackage{}, domain.ErrPackageNotFound
}

// Subscriptions lists the subscription services.
func Subscriptions() []domain.SubscriptionService {
	out := make([]domain.SubscriptionService, len(services))
	for i, s := range services {
		s.Plans = slices.Clone(s.Plans)
		out[i] = s
	}
	return out
}

// Subscription finds a service by id.
func Subscription(id string) (domain.SubscriptionService, error) {
	for _, s := range Subscriptions() {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.SubscriptionService{}, domain.ErrSubscriptionNotFound
}

// SeedDocuments returns a fresh copy of the starting marketplace.
func SeedDocuments() []domain.Document {
	out := make([]domain.Document, len(documents))
	for i, d := range documents {
		d.Tags = slices.Clone(d.Tags)
		out[i] = d
	}
	return out
}
