package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ryzetech/lifestyle-api/internal/core/ports"
	"github.com/ryzetech/lifestyle-api/pkg/metrics"
)

// GenerationService runs queued generation jobs and applies their results to
// the session that asked, provided the requesting view is still mounted.
type GenerationService struct {
	store     ports.SessionStore
	generator ports.TextGenerator
	cache     ports.OverviewCache
	log       zerolog.Logger
	now       func() time.Time
}

func NewGenerationService(store ports.SessionStore, generator ports.TextGenerator, cache ports.OverviewCache, log zerolog.Logger) *GenerationService {
	if cache == nil {
		cache = noopCache{}
	}
	return &GenerationService{
		store:     store,
		generator: generator,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

// Process handles one job. A job whose view was unmounted is dropped without
// calling the generator; a result that arrives after unmount is discarded.
func (s *GenerationService) Process(ctx context.Context, job ports.GenerationJob) error {
	kind := string(job.Kind)
	if !job.Token.Alive() {
		metrics.GenerationsTotal.WithLabelValues(kind, "discarded").Inc()
		return nil
	}

	sess, err := s.store.Get(ctx, job.SessionID)
	if err != nil {
		return fmt.Errorf("process %s: %w", kind, err)
	}

	start := time.Now()
	var text, result string
	switch job.Kind {
	case ports.GenerateTutorReply:
		text = s.generator.TutorReply(ctx, job.Prompt, job.History)
		result = resultOf(text, ports.TutorErrorFallback, ports.TutorEmptyFallback)
	case ports.GenerateOverview:
		doc := job.Document
		text = s.generator.DocumentOverview(ctx, doc.Title, doc.Description, doc.Tags)
		result = resultOf(text, ports.OverviewErrorFallback, ports.OverviewEmptyFallback)
		if result == "ok" {
			if err := s.cache.Set(ctx, doc.ID, text); err != nil {
				s.log.Warn().Err(err).Str("document_id", doc.ID).Msg("failed to cache overview")
			}
		}
	default:
		return fmt.Errorf("process: unknown generation kind %q", job.Kind)
	}
	metrics.GenerationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	var applied bool
	switch job.Kind {
	case ports.GenerateTutorReply:
		applied = sess.ApplyTutorReply(job.Token, text, s.now())
	case ports.GenerateOverview:
		applied = sess.ApplyOverview(job.Token, job.Document.ID, text)
	}
	if !applied {
		result = "discarded"
	}
	metrics.GenerationsTotal.WithLabelValues(kind, result).Inc()

	s.log.Debug().
		Str("session_id", job.SessionID).
		Str("kind", kind).
		Str("result", result).
		Dur("elapsed", time.Since(start)).
		Msg("generation finished")
	return nil
}

func resultOf(text string, fallbacks ...string) string {
	for _, f := range fallbacks {
		if text == f {
			return "fallback"
		}
	}
	return "ok"
}
