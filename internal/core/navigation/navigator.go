// Package navigation decides which view a navigation request lands on.
package navigation

import "github.com/ryzetech/lifestyle-api/internal/core/domain"

// Decision is the result of a navigation request.
type Decision struct {
	View          domain.View `json:"view"`
	Changed       bool        `json:"changed"`
	LoginRequired bool        `json:"login_required"`
}

// Navigate routes target given the current view. Home is always reachable;
// restricted views need an authenticated account, otherwise the current view is
// kept and the caller is asked to show the login prompt.
func Navigate(current, target domain.View, authenticated bool) Decision {
	if target.Restricted() && !authenticated {
		return Decision{View: current, LoginRequired: true}
	}
	return Decision{View: target, Changed: target != current}
}
