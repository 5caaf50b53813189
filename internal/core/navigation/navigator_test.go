package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

func TestNavigate(t *testing.T) {
	tests := []struct {
		name          string
		current       domain.View
		target        domain.View
		authenticated bool
		want          Decision
	}{
		{"home is always open", domain.ViewPlans, domain.ViewHome, false, Decision{View: domain.ViewHome, Changed: true}},
		{"restricted view needs login", domain.ViewHome, domain.ViewPlans, false, Decision{View: domain.ViewHome, LoginRequired: true}},
		{"learning needs login", domain.ViewHome, domain.ViewLearning, false, Decision{View: domain.ViewHome, LoginRequired: true}},
		{"authenticated user goes through", domain.ViewHome, domain.ViewSubscriptions, true, Decision{View: domain.ViewSubscriptions, Changed: true}},
		{"same view is not a change", domain.ViewPlans, domain.ViewPlans, true, Decision{View: domain.ViewPlans}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Navigate(tt.current, tt.target, tt.authenticated))
		})
	}
}
