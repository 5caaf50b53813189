package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ryzetech/lifestyle-api/internal/core/catalog"
	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/navigation"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
	"github.com/ryzetech/lifestyle-api/pkg/metrics"
)

// SessionServiceOptions carries the tunables of new sessions.
type SessionServiceOptions struct {
	Session session.Config
	Mixer   domain.MixerRates
}

// SessionService is the root controller: it owns every session through the
// store and is the only path by which views mutate state.
type SessionService struct {
	store      ports.SessionStore
	auth       ports.AuthService
	dispatcher ports.GenerationDispatcher
	cache      ports.OverviewCache
	auditor    ports.PurchaseAuditor
	opts       SessionServiceOptions
	log        zerolog.Logger
	now        func() time.Time
}

// NewSessionService wires the controller. cache and auditor may be nil.
func NewSessionService(
	store ports.SessionStore,
	auth ports.AuthService,
	dispatcher ports.GenerationDispatcher,
	cache ports.OverviewCache,
	auditor ports.PurchaseAuditor,
	opts SessionServiceOptions,
	log zerolog.Logger,
) *SessionService {
	if cache == nil {
		cache = noopCache{}
	}
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &SessionService{
		store:      store,
		auth:       auth,
		dispatcher: dispatcher,
		cache:      cache,
		auditor:    auditor,
		opts:       opts,
		log:        log,
		now:        time.Now,
	}
}

// Create starts an anonymous session in the home view.
func (s *SessionService) Create(ctx context.Context) (*ports.SessionCreated, error) {
	sess, err := session.New(uuid.NewString(), s.opts.Session, s.now())
	if err != nil {
		return nil, err
	}
	token, err := s.auth.IssueToken(sess.ID())
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := s.store.Add(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.log.Info().Str("session_id", sess.ID()).Msg("session created")
	return &ports.SessionCreated{Token: token, Snapshot: sess.Snapshot()}, nil
}

func (s *SessionService) Snapshot(ctx context.Context, sessionID string) (session.Snapshot, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Notification returns the visible notification, or nil once it expired.
func (s *SessionService) Notification(ctx context.Context, sessionID string) (*domain.Notification, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	n, ok := sess.Notification()
	if !ok {
		return nil, nil
	}
	return &n, nil
}

// Login checks the demo credentials. On failure the session is left unchanged.
func (s *SessionService) Login(ctx context.Context, sessionID, phone, password string) (session.Snapshot, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := s.auth.Verify(ctx, phone, password); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		s.log.Debug().Str("session_id", sessionID).Msg("login rejected")
		return session.Snapshot{}, err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("session_id", sessionID).Msg("session authenticated")
	return sess.Login(), nil
}

func (s *SessionService) Logout(ctx context.Context, sessionID string) (session.Snapshot, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Logout(), nil
}

func (s *SessionService) Onboard(ctx context.Context, sessionID string, profile domain.Profile) (session.Snapshot, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	snap, err := sess.Onboard(profile)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("onboard: %w", err)
	}
	return snap, nil
}

func (s *SessionService) Navigate(ctx context.Context, sessionID string, target domain.View) (navigation.Decision, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return navigation.Decision{}, err
	}
	d := sess.Navigate(target)
	if d.LoginRequired {
		s.log.Debug().Str("session_id", sessionID).Str("target", string(target)).Msg("navigation redirected to login")
	}
	return d, nil
}

// Quote prices a custom package. It does not touch any session.
func (s *SessionService) Quote(selection domain.MixSelection) (domain.MixQuote, error) {
	if err := selection.Validate(); err != nil {
		return domain.MixQuote{}, err
	}
	return s.opts.Mixer.Quote(selection), nil
}

func (s *SessionService) RequestPackage(ctx context.Context, sessionID, packageID string) (domain.PurchaseIntent, error) {
	pkg, err := catalog.Package(packageID)
	if err != nil {
		return domain.PurchaseIntent{}, err
	}
	return s.request(ctx, sessionID, packageIntent(pkg))
}

// RequestMix prices the selection and requests it as a data package.
func (s *SessionService) RequestMix(ctx context.Context, sessionID string, selection domain.MixSelection) (domain.PurchaseIntent, error) {
	quote, err := s.Quote(selection)
	if err != nil {
		return domain.PurchaseIntent{}, err
	}
	pkg := quote.Package("mix-" + uuid.NewString())
	return s.request(ctx, sessionID, packageIntent(pkg))
}

func (s *SessionService) RequestDocument(ctx context.Context, sessionID, documentID string) (domain.PurchaseIntent, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.PurchaseIntent{}, err
	}
	doc, err := sess.Document(documentID)
	if err != nil {
		return domain.PurchaseIntent{}, err
	}
	if doc.Owned {
		return domain.PurchaseIntent{}, domain.ErrDocumentOwned
	}
	return s.place(sess, documentIntent(doc))
}

func (s *SessionService) RequestSubscription(ctx context.Context, sessionID string, in ports.SubscriptionInput) (domain.PurchaseIntent, error) {
	if !in.Currency.Valid() {
		return domain.PurchaseIntent{}, fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidSelection, in.Currency)
	}
	svc, err := catalog.Subscription(in.ServiceID)
	if err != nil {
		return domain.PurchaseIntent{}, err
	}
	plan, ok := svc.Plan(in.Plan)
	if !ok {
		return domain.PurchaseIntent{}, fmt.Errorf("%w: %s has no %q plan", domain.ErrSubscriptionNotFound, svc.Name, in.Plan)
	}
	return s.request(ctx, sessionID, subscriptionIntent(svc, plan, in.Currency))
}

func (s *SessionService) request(ctx context.Context, sessionID string, intent domain.PurchaseIntent) (domain.PurchaseIntent, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.PurchaseIntent{}, err
	}
	return s.place(sess, intent)
}

func (s *SessionService) place(sess *session.Session, intent domain.PurchaseIntent) (domain.PurchaseIntent, error) {
	replaced, err := sess.Request(intent)
	if err != nil {
		return domain.PurchaseIntent{}, err
	}
	metrics.IntentsRequestedTotal.WithLabelValues(string(intent.Kind), strconv.FormatBool(replaced != nil)).Inc()

	ev := s.log.Debug().Str("session_id", sess.ID()).Str("intent_id", intent.ID).Str("kind", string(intent.Kind))
	if replaced != nil {
		ev = ev.Str("replaced_intent_id", replaced.ID)
	}
	ev.Msg("purchase awaiting confirmation")
	return intent, nil
}

func (s *SessionService) Pending(ctx context.Context, sessionID string) (*domain.PurchaseIntent, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	intent, ok := sess.Pending()
	if !ok {
		return nil, nil
	}
	return &intent, nil
}

// Confirm resolves the pending intent. An unaffordable intent is not an error:
// the outcome carries the rejection and the session holds an error notification.
func (s *SessionService) Confirm(ctx context.Context, sessionID, intentID string) (*ports.ConfirmResult, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out, snap, err := sess.Confirm(intentID)
	if err != nil {
		return nil, err
	}

	if !out.Applied {
		metrics.PurchasesTotal.WithLabelValues(string(out.Intent.Kind), "insufficient_funds").Inc()
		s.log.Info().
			Str("session_id", sessionID).
			Str("intent_id", intentID).
			Str("currency", string(out.Rejection.Currency)).
			Int64("shortfall", out.Rejection.Shortfall).
			Msg("purchase rejected")
		return &ports.ConfirmResult{Outcome: out, Snapshot: snap}, nil
	}

	metrics.PurchasesTotal.WithLabelValues(string(out.Intent.Kind), "applied").Inc()
	s.log.Info().
		Str("session_id", sessionID).
		Str("intent_id", intentID).
		Str("kind", string(out.Intent.Kind)).
		Int64("cost", out.Intent.Cost.Amount).
		Str("currency", string(out.Intent.Cost.Currency)).
		Msg("purchase applied")

	// Audit trail is best effort.
	receipt := domain.Receipt{
		SessionID: sessionID,
		IntentID:  out.Intent.ID,
		Kind:      out.Intent.Kind,
		Subject:   out.Intent.Subject,
		Cost:      out.Intent.Cost,
		Effect:    out.Delta,
		Balances:  snap.Account.Balances,
		AppliedAt: s.now().UTC(),
	}
	if err := s.auditor.Record(ctx, receipt); err != nil {
		s.log.Warn().Err(err).Str("intent_id", intentID).Msg("failed to record purchase receipt")
	}

	return &ports.ConfirmResult{Outcome: out, Snapshot: snap}, nil
}

// Cancel discards the pending intent. Cancelling with nothing pending is a no-op.
func (s *SessionService) Cancel(ctx context.Context, sessionID string) error {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if _, ok := sess.Cancel(); ok {
		metrics.ConfirmationsCancelledTotal.Inc()
	}
	return nil
}

func (s *SessionService) SearchDocuments(ctx context.Context, sessionID, query string) ([]domain.Document, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.SearchDocuments(query), nil
}

func (s *SessionService) Library(ctx context.Context, sessionID string) ([]domain.Document, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Library(), nil
}

func (s *SessionService) Upload(ctx context.Context, sessionID string, in ports.UploadInput) (*ports.UploadResult, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	doc, snap, err := sess.Upload(in.Title, in.Tags, in.Reward, in.Price)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("session_id", sessionID).Str("document_id", doc.ID).Str("reward", string(in.Reward)).Msg("document uploaded")
	return &ports.UploadResult{Document: doc, Snapshot: snap}, nil
}

// OpenPreview enters the preview view and asks for the AI overview. A cached
// overview is applied immediately; otherwise a job is queued and the preview
// stays loading until it completes.
func (s *SessionService) OpenPreview(ctx context.Context, sessionID, documentID string) (session.Preview, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return session.Preview{}, err
	}
	token, doc, err := sess.OpenPreview(documentID)
	if err != nil {
		return session.Preview{}, err
	}

	kind := string(ports.GenerateOverview)
	if text, ok, err := s.cache.Get(ctx, doc.ID); err != nil {
		s.log.Warn().Err(err).Str("document_id", doc.ID).Msg("overview cache lookup failed")
	} else if ok {
		sess.ApplyOverview(token, doc.ID, text)
		metrics.GenerationsTotal.WithLabelValues(kind, "cached").Inc()
		return sess.Preview()
	}

	job := ports.GenerationJob{
		SessionID: sessionID,
		Kind:      ports.GenerateOverview,
		Token:     token,
		Document:  doc,
	}
	if !s.dispatcher.Enqueue(job) {
		metrics.GenerationsTotal.WithLabelValues(kind, "dropped").Inc()
		s.log.Warn().Str("session_id", sessionID).Msg("generation queue full, using fallback overview")
		sess.ApplyOverview(token, doc.ID, ports.OverviewErrorFallback)
	}
	return sess.Preview()
}

func (s *SessionService) Preview(ctx context.Context, sessionID string) (session.Preview, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return session.Preview{}, err
	}
	return sess.Preview()
}

// ClosePreview leaves the preview; a still running overview job is discarded
// when it completes.
func (s *SessionService) ClosePreview(ctx context.Context, sessionID string) error {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.ClosePreview()
	return nil
}

func (s *SessionService) Conversation(ctx context.Context, sessionID string) (ports.Conversation, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return ports.Conversation{}, err
	}
	msgs, typing := sess.Conversation()
	return ports.Conversation{Messages: msgs, Typing: typing}, nil
}

// SendTutorMessage records the user's message and queues the tutor reply.
func (s *SessionService) SendTutorMessage(ctx context.Context, sessionID, text string) (ports.Conversation, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return ports.Conversation{}, err
	}
	token, history, err := sess.SendTutorMessage(text, s.now())
	if err != nil {
		return ports.Conversation{}, err
	}

	job := ports.GenerationJob{
		SessionID: sessionID,
		Kind:      ports.GenerateTutorReply,
		Token:     token,
		Prompt:    text,
		History:   history,
	}
	if !s.dispatcher.Enqueue(job) {
		metrics.GenerationsTotal.WithLabelValues(string(ports.GenerateTutorReply), "dropped").Inc()
		s.log.Warn().Str("session_id", sessionID).Msg("generation queue full, using fallback reply")
		sess.ApplyTutorReply(token, ports.TutorErrorFallback, s.now())
	}

	msgs, typing := sess.Conversation()
	return ports.Conversation{Messages: msgs, Typing: typing}, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (noopCache) Set(context.Context, string, string) error         { return nil }

type noopAuditor struct{}

func (noopAuditor) Record(context.Context, domain.Receipt) error { return nil }

