// Package session holds the state of one browser session: the account, the
// active view, the confirmation slot, the notification, the marketplace, the
// document preview and the tutor conversation.
//
// Every exported method locks the session, so the ledger and gate inside run
// under one logical thread of control even though HTTP requests and
// generation results arrive on different goroutines.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ryzetech/lifestyle-api/internal/core/catalog"
	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/gate"
	"github.com/ryzetech/lifestyle-api/internal/core/ledger"
	"github.com/ryzetech/lifestyle-api/internal/core/liveness"
	"github.com/ryzetech/lifestyle-api/internal/core/navigation"
	"github.com/ryzetech/lifestyle-api/internal/core/notify"
)

// ErrViewInactive is returned when an action needs a view that is not mounted.
var ErrViewInactive = errors.New("view is not active")

const tutorGreeting = "Hello! I am RyzeBot. I can help you learn new topics or find study materials. What are you studying today?"

// UploadReward selects how an uploader is paid.
type UploadReward string

const (
	RewardInstant UploadReward = "instant"
	RewardSell    UploadReward = "sell"
)

// Config seeds new sessions.
type Config struct {
	Name              string
	PhoneNumber       string
	Balances          domain.Balances
	NotificationTTL   time.Duration
	KeepOpenOnFailure bool
	// InstantUploadReward is the coin reward for an upload that is not listed for sale.
	InstantUploadReward int64
}

// PreviewStatus tracks the AI overview of the previewed document.
type PreviewStatus string

const (
	PreviewLoading PreviewStatus = "loading"
	PreviewReady   PreviewStatus = "ready"
)

// Preview is the state of the document preview view.
type Preview struct {
	Document  domain.Document `json:"document"`
	Status    PreviewStatus   `json:"status"`
	Overview  string          `json:"overview,omitempty"`
	CanAfford bool            `json:"can_afford"`
}

// Snapshot is the read-only projection handed to views.
type Snapshot struct {
	ID                 string                 `json:"id"`
	Account            domain.Account         `json:"account"`
	View               domain.View            `json:"view"`
	OnboardingRequired bool                   `json:"onboarding_required"`
	Pending            *domain.PurchaseIntent `json:"pending_confirmation,omitempty"`
	Notification       *domain.Notification   `json:"notification,omitempty"`
}

type Session struct {
	mu sync.Mutex

	id       string
	lastSeen time.Time

	name          string
	phone         string
	authenticated bool
	profile       *domain.Profile
	onboarding    bool
	view          domain.View

	ledger *ledger.Ledger
	gate   *gate.Gate
	sink   *notify.Sink

	uploadReward int64
	documents    []domain.Document

	previewSlot  liveness.Slot
	previewDocID string
	overview     string

	learningSlot liveness.Slot
	chat         []domain.ChatMessage

	// pendingReplies counts tutor replies still in flight for the mounted learning view.
	pendingReplies int
}

// New builds a session in the home view with an unauthenticated account.
func New(id string, cfg Config, now time.Time) (*Session, error) {
	l, err := ledger.New(cfg.Balances)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	sink := notify.NewSink(cfg.NotificationTTL)
	s := &Session{
		id:           id,
		lastSeen:     now,
		name:         cfg.Name,
		phone:        cfg.PhoneNumber,
		view:         domain.ViewHome,
		ledger:       l,
		sink:         sink,
		gate:         gate.New(l, sink, gate.KeepOpenOnFailure(cfg.KeepOpenOnFailure)),
		uploadReward: cfg.InstantUploadReward,
		documents:    catalog.SeedDocuments(),
		chat: []domain.ChatMessage{
			{ID: "0", Role: domain.RoleModel, Text: tutorGreeting, Timestamp: now},
		},
	}
	return s, nil
}

func (s *Session) ID() string { return s.id }

// Touch records activity.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// IdleSince reports the last activity time.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Close stops the notification timer and revokes every mounted view.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink.Stop()
	s.previewSlot.Unmount()
	s.learningSlot.Unmount()
}

// Snapshot returns the current projection.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:                 s.id,
		Account:            s.account(),
		View:               s.view,
		OnboardingRequired: s.onboarding,
	}
	if p, ok := s.gate.Pending(); ok {
		snap.Pending = &p
	}
	if n, ok := s.sink.Current(); ok {
		snap.Notification = &n
	}
	return snap
}

func (s *Session) account() domain.Account {
	a := domain.Account{
		Name:          s.name,
		PhoneNumber:   s.phone,
		Balances:      s.ledger.Balances(),
		Authenticated: s.authenticated,
	}
	if s.profile != nil {
		p := *s.profile
		a.Profile = &p
	}
	return a
}

// Notification returns the visible notification.
func (s *Session) Notification() (domain.Notification, bool) {
	return s.sink.Current()
}

// Login marks the account authenticated. Credentials are checked by the caller.
// Onboarding is requested when no profile has been collected yet.
func (s *Session) Login() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	s.onboarding = s.profile == nil
	return s.snapshot()
}

// Logout drops authentication and returns to home.
func (s *Session) Logout() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.onboarding = false
	s.gate.Cancel()
	s.setView(domain.ViewHome)
	s.sink.Notify("Logged out successfully", domain.SeveritySuccess)
	return s.snapshot()
}

// Onboard stores the profile. It can be set only once.
func (s *Session) Onboard(p domain.Profile) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		return Snapshot{}, domain.ErrNotAuthenticated
	}
	if s.profile != nil {
		return Snapshot{}, domain.ErrAlreadyOnboarded
	}
	if err := p.Validate(); err != nil {
		return Snapshot{}, err
	}
	s.profile = &p
	s.onboarding = false
	s.sink.Notify("Profile updated successfully!", domain.SeveritySuccess)
	return s.snapshot(), nil
}

// Navigate applies the navigation gate.
func (s *Session) Navigate(target domain.View) navigation.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == domain.ViewPreview && s.view != domain.ViewPreview {
		// The preview view is entered through OpenPreview only.
		target = domain.ViewLearning
	}
	d := navigation.Navigate(s.view, target, s.authenticated)
	if d.Changed {
		s.setView(d.View)
	}
	return d
}

// setView switches views, unmounting the one being left and mounting the new one.
func (s *Session) setView(v domain.View) {
	if v == s.view {
		return
	}
	switch s.view {
	case domain.ViewPreview:
		s.previewSlot.Unmount()
		s.previewDocID = ""
		s.overview = ""
	case domain.ViewLearning:
		s.learningSlot.Unmount()
		s.pendingReplies = 0
	}
	s.view = v
	if v == domain.ViewLearning {
		s.learningSlot.Mount()
	}
}

// Request places a purchase intent in the confirmation slot.
func (s *Session) Request(intent domain.PurchaseIntent) (replaced *domain.PurchaseIntent, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		return nil, domain.ErrNotAuthenticated
	}
	return s.gate.Request(intent), nil
}

// Pending returns the intent awaiting confirmation.
func (s *Session) Pending() (domain.PurchaseIntent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Pending()
}

// Confirm resolves the pending intent. A successful document purchase marks the
// document owned and returns to the learning view.
func (s *Session) Confirm(intentID string) (domain.Outcome, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		return domain.Outcome{}, Snapshot{}, domain.ErrNotAuthenticated
	}
	out, err := s.gate.Confirm(intentID)
	if err != nil {
		return out, Snapshot{}, err
	}
	if out.Applied && out.Intent.Kind == domain.IntentDocument {
		if i := s.documentIndex(out.Intent.DocumentID); i >= 0 {
			s.documents[i].Owned = true
		}
		s.setView(domain.ViewLearning)
	}
	return out, s.snapshot(), nil
}

// Cancel discards the pending intent.
func (s *Session) Cancel() (domain.PurchaseIntent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Cancel()
}

// Document looks up a marketplace document.
func (s *Session) Document(id string) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.documentIndex(id)
	if i < 0 {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return cloneDocument(s.documents[i]), nil
}

func (s *Session) documentIndex(id string) int {
	return slices.IndexFunc(s.documents, func(d domain.Document) bool { return d.ID == id })
}

// SearchDocuments filters the marketplace by a case-insensitive substring of the
// title or any tag. An empty query returns every document.
func (s *Session) SearchDocuments(query string) []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Document, 0, len(s.documents))
	for _, d := range s.documents {
		if q == "" || matches(d, q) {
			out = append(out, cloneDocument(d))
		}
	}
	return out
}

// Library lists the documents the user owns.
func (s *Session) Library() []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Document
	for _, d := range s.documents {
		if d.Owned {
			out = append(out, cloneDocument(d))
		}
	}
	return out
}

func matches(d domain.Document, q string) bool {
	if strings.Contains(strings.ToLower(d.Title), q) {
		return true
	}
	return slices.ContainsFunc(d.Tags, func(t string) bool {
		return strings.Contains(strings.ToLower(t), q)
	})
}

func cloneDocument(d domain.Document) domain.Document {
	d.Tags = slices.Clone(d.Tags)
	return d
}

// Upload adds a user document to the marketplace. An instant reward credits
// coins right away; a sale listing only lists the document at price.
func (s *Session) Upload(title string, tags []string, reward UploadReward, price int64) (domain.Document, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		return domain.Document{}, Snapshot{}, domain.ErrNotAuthenticated
	}

	doc := domain.Document{
		ID:          uuid.NewString(),
		Title:       title,
		Author:      "You",
		Description: "User uploaded document",
		Tags:        tags,
		Owned:       true,
	}

	switch reward {
	case RewardInstant:
		if err := s.ledger.Credit(domain.Effect{Coins: s.uploadReward}); err != nil {
			return domain.Document{}, Snapshot{}, err
		}
		s.sink.Notify(fmt.Sprintf("Upload successful! You earned %d RYZE COINS instantly.", s.uploadReward), domain.SeveritySuccess)
	case RewardSell:
		if price < 0 {
			return domain.Document{}, Snapshot{}, fmt.Errorf("upload: %w: negative price", domain.ErrInvalidEffect)
		}
		doc.PriceCoins = price
		s.sink.Notify(fmt.Sprintf("Upload successful! Listed for %d RYZE COINS.", price), domain.SeveritySuccess)
	default:
		return domain.Document{}, Snapshot{}, fmt.Errorf("upload: unknown reward %q", reward)
	}

	s.documents = append([]domain.Document{doc}, s.documents...)
	return cloneDocument(doc), s.snapshot(), nil
}

// OpenPreview enters the preview view for a document and mounts a fresh token
// for its overview request.
func (s *Session) OpenPreview(documentID string) (*liveness.Token, domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		return nil, domain.Document{}, domain.ErrNotAuthenticated
	}
	i := s.documentIndex(documentID)
	if i < 0 {
		return nil, domain.Document{}, domain.ErrDocumentNotFound
	}

	s.setView(domain.ViewPreview)
	s.previewDocID = documentID
	s.overview = ""
	return s.previewSlot.Mount(), cloneDocument(s.documents[i]), nil
}

// ClosePreview goes back to the learning view, revoking the preview token.
func (s *Session) ClosePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == domain.ViewPreview {
		s.setView(domain.ViewLearning)
	}
	s.previewSlot.Unmount()
	s.previewDocID = ""
	s.overview = ""
}

// ApplyOverview stores a generated overview if the preview that asked for it is
// still mounted. It reports whether the result was applied.
func (s *Session) ApplyOverview(token *liveness.Token, documentID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !token.Alive() || s.previewDocID != documentID {
		return false
	}
	s.overview = text
	return true
}

// Preview returns the preview state.
func (s *Session) Preview() (Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != domain.ViewPreview || s.previewDocID == "" {
		return Preview{}, ErrViewInactive
	}
	i := s.documentIndex(s.previewDocID)
	if i < 0 {
		return Preview{}, domain.ErrDocumentNotFound
	}
	doc := s.documents[i]
	p := Preview{
		Document:  cloneDocument(doc),
		Status:    PreviewLoading,
		CanAfford: s.ledger.Balances().Coins >= doc.PriceCoins,
	}
	if s.overview != "" {
		p.Status = PreviewReady
		p.Overview = s.overview
	}
	return p, nil
}

// SendTutorMessage appends a user message to the conversation and returns the
// token and history the reply request should carry.
func (s *Session) SendTutorMessage(text string, now time.Time) (*liveness.Token, []domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		return nil, nil, domain.ErrNotAuthenticated
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, domain.ErrEmptyMessage
	}
	token := s.learningSlot.Current()
	if s.view != domain.ViewLearning || token == nil {
		return nil, nil, fmt.Errorf("tutor: %w: open the learning hub first", ErrViewInactive)
	}

	history := slices.Clone(s.chat)
	s.chat = append(s.chat, domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.RoleUser,
		Text:      text,
		Timestamp: now,
	})
	s.pendingReplies++
	return token, history, nil
}

// ApplyTutorReply appends the tutor reply if the learning view is still mounted.
func (s *Session) ApplyTutorReply(token *liveness.Token, text string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !token.Alive() {
		return false
	}
	s.chat = append(s.chat, domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.RoleModel,
		Text:      text,
		Timestamp: now,
	})
	if s.pendingReplies > 0 {
		s.pendingReplies--
	}
	return true
}

// Conversation returns the tutor messages and whether a reply is pending.
func (s *Session) Conversation() ([]domain.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.chat), s.pendingReplies > 0
}
