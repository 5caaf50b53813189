package handler

import (
	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error         string `json:"error"`
	LoginRequired bool   `json:"login_required,omitempty"`
}

// --- Session / auth ---

type createSessionResponse struct {
	Token   string           `json:"token"`
	Session session.Snapshot `json:"session"`
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password"     validate:"required"`
}

type onboardingRequest struct {
	Purpose string `json:"purpose" validate:"required,oneof=academic self-study"`
	Detail  string `json:"detail"  validate:"required"`
}

type navigateRequest struct {
	View string `json:"view" validate:"required"`
}

type notificationResponse struct {
	Notification *domain.Notification `json:"notification"`
}

// --- Catalog / purchases ---

type mixRequest struct {
	DataGB       int64 `json:"data_gb"       validate:"gte=0,lte=100"`
	VoiceMinutes int64 `json:"voice_minutes" validate:"gte=0,lte=1000"`
	ValidityDays int64 `json:"validity_days" validate:"gte=3,lte=30"`
}

func (r mixRequest) selection() domain.MixSelection {
	return domain.MixSelection{DataGB: r.DataGB, VoiceMinutes: r.VoiceMinutes, ValidityDays: r.ValidityDays}
}

type packagePurchaseRequest struct {
	PackageID string `json:"package_id" validate:"required"`
}

type documentPurchaseRequest struct {
	DocumentID string `json:"document_id" validate:"required"`
}

type subscriptionPurchaseRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
	Plan      string `json:"plan"       validate:"required"`
	Currency  string `json:"currency"   validate:"required,oneof=cash coins"`
}

type intentResponse struct {
	Intent domain.PurchaseIntent `json:"intent"`
}

type pendingResponse struct {
	Pending *domain.PurchaseIntent `json:"pending"`
}

type confirmRequest struct {
	IntentID string `json:"intent_id" validate:"required"`
}

type confirmResponse struct {
	Applied   bool                  `json:"applied"`
	Intent    domain.PurchaseIntent `json:"intent"`
	Delta     domain.Effect         `json:"delta"`
	Currency  domain.Currency       `json:"shortfall_currency,omitempty"`
	Shortfall int64                 `json:"shortfall,omitempty"`
	Session   session.Snapshot      `json:"session"`
}

// --- Documents / tutor ---

type uploadRequest struct {
	Title  string   `json:"title"  validate:"required,max=200"`
	Tags   []string `json:"tags"   validate:"max=10,dive,required"`
	Reward string   `json:"reward" validate:"required,oneof=instant sell"`
	Price  int64    `json:"price"  validate:"gte=0"`
}

type uploadResponse struct {
	Document domain.Document  `json:"document"`
	Session  session.Snapshot `json:"session"`
}

type documentsResponse struct {
	Documents []domain.Document `json:"documents"`
}

type tutorMessageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type conversationResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
	Typing   bool                 `json:"typing"`
}
