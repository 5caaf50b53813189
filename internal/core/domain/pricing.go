package domain

import (
	"fmt"
	"math"
)

// Mixer slider bounds.
const (
	MixMaxDataGB       = 100
	MixMaxVoiceMinutes = 1000
	MixVoiceStep       = 10
	MixMinValidityDays = 3
	MixMaxValidityDays = 30
)

// MixerRates are the demo constants behind the custom package price.
type MixerRates struct {
	PerGB              float64
	PerMinute          float64
	PerDay             float64
	Base               float64
	CoinsPerTaka       int64
	HoichoiThresholdGB int64
}

// DefaultMixerRates reproduce the published mixer prices.
var DefaultMixerRates = MixerRates{
	PerGB:              5,
	PerMinute:          0.6,
	PerDay:             2.5,
	Base:               20,
	CoinsPerTaka:       80,
	HoichoiThresholdGB: 20,
}

// MixSelection is the user's configuration of a custom package.
type MixSelection struct {
	DataGB       int64 `json:"data_gb"`
	VoiceMinutes int64 `json:"voice_minutes"`
	ValidityDays int64 `json:"validity_days"`
}

// Validate enforces the slider ranges.
func (m MixSelection) Validate() error {
	switch {
	case m.DataGB < 0 || m.DataGB > MixMaxDataGB:
		return fmt.Errorf("%w: data must be between 0 and %d GB", ErrInvalidSelection, MixMaxDataGB)
	case m.VoiceMinutes < 0 || m.VoiceMinutes > MixMaxVoiceMinutes || m.VoiceMinutes%MixVoiceStep != 0:
		return fmt.Errorf("%w: voice must be 0-%d minutes in steps of %d", ErrInvalidSelection, MixMaxVoiceMinutes, MixVoiceStep)
	case m.ValidityDays < MixMinValidityDays || m.ValidityDays > MixMaxValidityDays:
		return fmt.Errorf("%w: validity must be between %d and %d days", ErrInvalidSelection, MixMinValidityDays, MixMaxValidityDays)
	}
	return nil
}

// MixQuote is the priced result of a selection.
type MixQuote struct {
	Selection   MixSelection `json:"selection"`
	PriceCash   int64        `json:"price_bdt"`
	CoinsEarned int64        `json:"coins_earned"`
	OTTs        []string     `json:"otts"`
}

// Quote prices a selection. It is pure: the same rates and selection always give the
// same quote. Arithmetic is done in thousandths of a taka so that .5 boundaries are
// exact, and the total is rounded half up.
func (r MixerRates) Quote(m MixSelection) MixQuote {
	milli := m.DataGB*toMilli(r.PerGB) +
		m.VoiceMinutes*toMilli(r.PerMinute) +
		m.ValidityDays*toMilli(r.PerDay) +
		toMilli(r.Base)
	price := (milli + 500) / 1000

	otts := []string{"Toffee"}
	if m.DataGB >= r.HoichoiThresholdGB {
		otts = append(otts, "Hoichoi")
	}
	return MixQuote{
		Selection:   m,
		PriceCash:   price,
		CoinsEarned: price * r.CoinsPerTaka,
		OTTs:        otts,
	}
}

// Package turns the quote into a purchasable bundle.
func (q MixQuote) Package(id string) DataPackage {
	return DataPackage{
		ID:           id,
		Name:         "Custom Mix",
		DataGB:       q.Selection.DataGB,
		VoiceMinutes: q.Selection.VoiceMinutes,
		PriceCash:    q.PriceCash,
		CoinsEarned:  q.CoinsEarned,
		ValidityDays: q.Selection.ValidityDays,
		OTTs:         q.OTTs,
	}
}

func toMilli(v float64) int64 {
	return int64(math.Round(v * 1000))
}
