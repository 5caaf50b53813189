package ports

import (
	"context"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/navigation"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
)

// SessionCreated is returned when a new browser session starts.
type SessionCreated struct {
	Token    string
	Snapshot session.Snapshot
}

// SubscriptionInput selects a plan and the currency to pay with.
type SubscriptionInput struct {
	ServiceID string
	Plan      string
	Currency  domain.Currency
}

// UploadInput describes a document upload.
type UploadInput struct {
	Title  string
	Tags   []string
	Reward session.UploadReward
	Price  int64
}

// ConfirmResult is the outcome of a confirmation plus the resulting state.
type ConfirmResult struct {
	Outcome  domain.Outcome
	Snapshot session.Snapshot
}

// UploadResult is the listed document plus the resulting state.
type UploadResult struct {
	Document domain.Document
	Snapshot session.Snapshot
}

// Conversation is the tutor chat state.
type Conversation struct {
	Messages []domain.ChatMessage
	Typing   bool
}

// SessionService is the root controller of a browser session.
type SessionService interface {
	Create(ctx context.Context) (*SessionCreated, error)
	Snapshot(ctx context.Context, sessionID string) (session.Snapshot, error)
	Notification(ctx context.Context, sessionID string) (*domain.Notification, error)

	Login(ctx context.Context, sessionID, phone, password string) (session.Snapshot, error)
	Logout(ctx context.Context, sessionID string) (session.Snapshot, error)
	Onboard(ctx context.Context, sessionID string, profile domain.Profile) (session.Snapshot, error)
	Navigate(ctx context.Context, sessionID string, target domain.View) (navigation.Decision, error)

	Quote(selection domain.MixSelection) (domain.MixQuote, error)
	RequestPackage(ctx context.Context, sessionID, packageID string) (domain.PurchaseIntent, error)
	RequestMix(ctx context.Context, sessionID string, selection domain.MixSelection) (domain.PurchaseIntent, error)
	RequestDocument(ctx context.Context, sessionID, documentID string) (domain.PurchaseIntent, error)
	RequestSubscription(ctx context.Context, sessionID string, in SubscriptionInput) (domain.PurchaseIntent, error)
	Pending(ctx context.Context, sessionID string) (*domain.PurchaseIntent, error)
	Confirm(ctx context.Context, sessionID, intentID string) (*ConfirmResult, error)
	Cancel(ctx context.Context, sessionID string) error

	SearchDocuments(ctx context.Context, sessionID, query string) ([]domain.Document, error)
	Library(ctx context.Context, sessionID string) ([]domain.Document, error)
	Upload(ctx context.Context, sessionID string, in UploadInput) (*UploadResult, error)
	OpenPreview(ctx context.Context, sessionID, documentID string) (session.Preview, error)
	Preview(ctx context.Context, sessionID string) (session.Preview, error)
	ClosePreview(ctx context.Context, sessionID string) error

	Conversation(ctx context.Context, sessionID string) (Conversation, error)
	SendTutorMessage(ctx context.Context, sessionID, text string) (Conversation, error)
}
