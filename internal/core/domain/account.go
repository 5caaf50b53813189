package domain

import (
	"errors"
	"fmt"
)

// Currency identifies which balance a cost is drawn from.
type Currency string

const (
	CurrencyCash  Currency = "cash"
	CurrencyCoins Currency = "coins"
)

// Valid reports whether c is a known currency.
func (c Currency) Valid() bool {
	return c == CurrencyCash || c == CurrencyCoins
}

// Label is the user-facing name of the currency.
func (c Currency) Label() string {
	switch c {
	case CurrencyCash:
		return "BDT"
	case CurrencyCoins:
		return "RYZE COINS"
	default:
		return string(c)
	}
}

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidEffect      = errors.New("invalid balance effect")
	ErrNotAuthenticated   = errors.New("login required")
	ErrAlreadyOnboarded   = errors.New("profile already set")
	ErrInvalidProfile     = errors.New("invalid onboarding profile")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InsufficientFundsError is returned when a debit exceeds the available balance.
// It matches ErrInsufficientFunds with errors.Is.
type InsufficientFundsError struct {
	Currency  Currency
	Shortfall int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s balance: short by %d", e.Currency, e.Shortfall)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// UserMessage is the notification text shown when the purchase is rejected.
func (e *InsufficientFundsError) UserMessage() string {
	if e.Currency == CurrencyCash {
		return "Insufficient BDT Balance."
	}
	return "Insufficient RYZE COINS."
}

// Balances holds the three quantities the ledger guards. None may go negative.
type Balances struct {
	Coins  int64 `json:"coin_balance"`
	Cash   int64 `json:"cash_balance"`
	DataGB int64 `json:"data_quota_gb"`
}

// Of returns the balance held in the given currency.
func (b Balances) Of(c Currency) int64 {
	if c == CurrencyCash {
		return b.Cash
	}
	return b.Coins
}

// NonNegative reports whether no balance is below zero.
func (b Balances) NonNegative() bool {
	return b.Coins >= 0 && b.Cash >= 0 && b.DataGB >= 0
}

// Purpose is the onboarding classification chosen after the first login.
type Purpose string

const (
	PurposeAcademic  Purpose = "academic"
	PurposeSelfStudy Purpose = "self-study"
)

// AcademicGrades and SelfStudyInterests are the allowed onboarding details per purpose.
var (
	AcademicGrades     = []string{"Grade 8", "Grade 9", "Grade 10", "SSC", "HSC", "Undergrad"}
	SelfStudyInterests = []string{"Technology", "Art & Design", "Business", "Literature", "Science"}
)

// Profile is set once during onboarding.
type Profile struct {
	Purpose Purpose `json:"purpose"`
	Detail  string  `json:"detail"`
}

// Validate checks the detail against the options offered for the purpose.
func (p Profile) Validate() error {
	var options []string
	switch p.Purpose {
	case PurposeAcademic:
		options = AcademicGrades
	case PurposeSelfStudy:
		options = SelfStudyInterests
	default:
		return fmt.Errorf("%w: unknown purpose %q", ErrInvalidProfile, p.Purpose)
	}
	for _, o := range options {
		if o == p.Detail {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a %s option", ErrInvalidProfile, p.Detail, p.Purpose)
}

// Account is the per-session projection of the user: balances plus identity flags.
type Account struct {
	Name          string   `json:"name"`
	PhoneNumber   string   `json:"phone_number"`
	Balances      Balances `json:"balances"`
	Authenticated bool     `json:"authenticated"`
	Profile       *Profile `json:"profile,omitempty"`
}
