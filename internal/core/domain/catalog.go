package domain

import (
	"errors"
	"time"
)

var (
	ErrPackageNotFound      = errors.New("data package not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrSubscriptionNotFound = errors.New("subscription plan not found")
	ErrDocumentOwned        = errors.New("document already owned")
	ErrInvalidSelection     = errors.New("invalid package selection")
	ErrEmptyMessage         = errors.New("message is empty")
)

// DataPackage is a telco bundle bought with cash that rewards coins and data.
type DataPackage struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Tag          string   `json:"tag,omitempty"`
	DataGB       int64    `json:"data_gb"`
	VoiceMinutes int64    `json:"voice_minutes"`
	PriceCash    int64    `json:"price_bdt"`
	CoinsEarned  int64    `json:"coins_earned"`
	ValidityDays int64    `json:"validity_days"`
	OTTs         []string `json:"otts"`
}

// Document is a study document listed on the marketplace.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	PriceCoins  int64    `json:"price_coins"`
	Downloads   int64    `json:"downloads"`
	Owned       bool     `json:"owned"`
}

// SubscriptionPlan is one tier of a subscription service, priced in both currencies.
type SubscriptionPlan struct {
	Name       string `json:"name"`
	PriceCash  int64  `json:"price_bdt"`
	PriceCoins int64  `json:"price_coins"`
}

// Price returns the plan price in the requested currency.
func (p SubscriptionPlan) Price(c Currency) Money {
	if c == CurrencyCash {
		return Money{Amount: p.PriceCash, Currency: CurrencyCash}
	}
	return Money{Amount: p.PriceCoins, Currency: CurrencyCoins}
}

// SubscriptionService is a third-party streaming or music service sold in the store.
type SubscriptionService struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Logo  string             `json:"logo"`
	Plans []SubscriptionPlan `json:"plans"`
}

// Plan looks up a plan by name.
func (s SubscriptionService) Plan(name string) (SubscriptionPlan, bool) {
	for _, p := range s.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return SubscriptionPlan{}, false
}

// ChatRole is the author of a tutor conversation message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one entry of the tutor conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
