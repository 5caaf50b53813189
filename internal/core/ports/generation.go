package ports

import (
	"context"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/liveness"
)

// GenerationKind selects the prompt of a generation job.
type GenerationKind string

const (
	GenerateTutorReply GenerationKind = "tutor_reply"
	GenerateOverview   GenerationKind = "document_overview"
)

// GenerationJob is a fire-and-forget text generation request. Its result is
// applied only while Token is alive.
type GenerationJob struct {
	SessionID string
	Kind      GenerationKind
	Token     *liveness.Token

	// Tutor reply.
	Prompt  string
	History []domain.ChatMessage

	// Document overview.
	Document domain.Document
}

// GenerationService runs one job and applies its result.
type GenerationService interface {
	Process(ctx context.Context, job GenerationJob) error
}

// GenerationDispatcher queues jobs for background processing. Enqueue reports
// false when the job could not be queued.
type GenerationDispatcher interface {
	Enqueue(job GenerationJob) bool
}
