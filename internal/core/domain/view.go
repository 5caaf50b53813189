package domain

import (
	"errors"
	"fmt"
)

// View is a section of the app the user can navigate to.
type View string

const (
	ViewHome          View = "home"
	ViewPlans         View = "plans"
	ViewLearning      View = "learning"
	ViewPreview       View = "preview"
	ViewSubscriptions View = "subscriptions"
)

var ErrUnknownView = errors.New("unknown view")

// ParseView validates a navigation target.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewHome, ViewPlans, ViewLearning, ViewPreview, ViewSubscriptions:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Restricted reports whether the view needs an authenticated account.
func (v View) Restricted() bool {
	return v != ViewHome
}
