package ports

import (
	"context"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

// Fixed texts returned when generation fails or comes back empty.
const (
	TutorErrorFallback    = "An error occurred while contacting the AI tutor. Please check your connection."
	TutorEmptyFallback    = "I'm sorry, I couldn't generate a response at the moment."
	OverviewErrorFallback = "Unable to generate AI overview at this time."
	OverviewEmptyFallback = "Preview generation unavailable."
)

// TextGenerator is the generative-text collaborator. Both calls are best effort:
// failures resolve to one of the fallback texts, never to an error.
type TextGenerator interface {
	TutorReply(ctx context.Context, prompt string, history []domain.ChatMessage) string
	DocumentOverview(ctx context.Context, title, description string, tags []string) string
}

// OverviewCache stores generated document overviews.
type OverviewCache interface {
	Get(ctx context.Context, documentID string) (string, bool, error)
	Set(ctx context.Context, documentID, overview string) error
}
