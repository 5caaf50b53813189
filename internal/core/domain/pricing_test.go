package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name      string
		sel       MixSelection
		wantPrice int64
		wantOTTs  []string
	}{
		{"minimum", MixSelection{DataGB: 0, VoiceMinutes: 0, ValidityDays: 3}, 28, []string{"Toffee"}},
		{"half taka rounds up", MixSelection{DataGB: 10, VoiceMinutes: 50, ValidityDays: 7}, 118, []string{"Toffee"}},
		{"rounds half up", MixSelection{DataGB: 20, VoiceMinutes: 100, ValidityDays: 7}, 198, []string{"Toffee", "Hoichoi"}},
		{"below hoichoi threshold", MixSelection{DataGB: 19, VoiceMinutes: 0, ValidityDays: 30}, 190, []string{"Toffee"}},
		{"maximum", MixSelection{DataGB: 100, VoiceMinutes: 1000, ValidityDays: 30}, 1195, []string{"Toffee", "Hoichoi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultMixerRates.Quote(tt.sel)
			assert.Equal(t, tt.wantPrice, q.PriceCash)
			assert.Equal(t, tt.wantPrice*80, q.CoinsEarned)
			assert.Equal(t, tt.wantOTTs, q.OTTs)
		})
	}
}

func TestQuote_IsDeterministic(t *testing.T) {
	for _, sel := range []MixSelection{
		{DataGB: 33, VoiceMinutes: 70, ValidityDays: 9},
		{DataGB: 10, VoiceMinutes: 50, ValidityDays: 7},
	} {
		first := DefaultMixerRates.Quote(sel)
		for range 5 {
			assert.Equal(t, first, DefaultMixerRates.Quote(sel))
		}
	}
	assert.Equal(t, int64(118), DefaultMixerRates.Quote(MixSelection{DataGB: 10, VoiceMinutes: 50, ValidityDays: 7}).PriceCash)
}

func TestMixSelection_Validate(t *testing.T) {
	bad := []MixSelection{
		{DataGB: -1, ValidityDays: 3},
		{DataGB: 101, ValidityDays: 3},
		{VoiceMinutes: 15, ValidityDays: 3},
		{VoiceMinutes: 1010, ValidityDays: 3},
		{ValidityDays: 2},
		{ValidityDays: 31},
	}
	for _, sel := range bad {
		assert.ErrorIs(t, sel.Validate(), ErrInvalidSelection, "%+v", sel)
	}
	assert.NoError(t, MixSelection{DataGB: 50, VoiceMinutes: 500, ValidityDays: 15}.Validate())
}

func TestQuote_Package(t *testing.T) {
	q := DefaultMixerRates.Quote(MixSelection{DataGB: 20, VoiceMinutes: 100, ValidityDays: 7})
	p := q.Package("mix-1")
	assert.Equal(t, "Custom Mix", p.Name)
	assert.Equal(t, int64(20), p.DataGB)
	assert.Equal(t, int64(198), p.PriceCash)
	assert.Equal(t, int64(15840), p.CoinsEarned)
}
