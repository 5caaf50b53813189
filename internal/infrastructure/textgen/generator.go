// Package textgen adapts Gemini to the text generation port. Every failure is
// folded into one of the fixed fallback texts.
package textgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
)

const (
	defaultModel   = "gemini-3-flash-preview"
	defaultTimeout = 30 * time.Second

	tutorInstruction = "You are RyzeBot, an intelligent AI tutor on the Ryze 3.0 Techcom platform. " +
		"Your goal is to help students learn new topics, summarize concepts, and suggest study tags. " +
		"Keep answers concise, encouraging, and formatted with Markdown."
)

// contentGenerator is the slice of *genai.Models the adapter needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config captures the settings of the Gemini adapter.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// RatePerSecond caps outbound calls; zero or less disables the limit.
	RatePerSecond float64
	Burst         int
}

// Generator implements ports.TextGenerator.
type Generator struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	log     zerolog.Logger
}

// New connects to Gemini. Without an API key it returns a generator that
// always answers with the fallback texts.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		log.Warn().Msg("no GenAI API key configured, AI features will answer with fallback texts")
		return newGenerator(nil, cfg, log), nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return newGenerator(client.Models, cfg, log), nil
}

func newGenerator(models contentGenerator, cfg Config, log zerolog.Logger) *Generator {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerSecond > 0 {
		burst := max(cfg.Burst, 1)
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return &Generator{
		models:  models,
		model:   model,
		timeout: timeout,
		limiter: limiter,
		log:     log,
	}
}

// Enabled reports whether a Gemini client is configured.
func (g *Generator) Enabled() bool {
	return g.models != nil
}

// TutorReply continues the tutor conversation with prompt.
func (g *Generator) TutorReply(ctx context.Context, prompt string, history []domain.ChatMessage) string {
	contents := append(historyContents(history), genai.NewContentFromText(prompt, genai.RoleUser))
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(tutorInstruction, genai.RoleUser),
	}
	return g.generate(ctx, "tutor_reply", contents, config, ports.TutorErrorFallback, ports.TutorEmptyFallback)
}

// DocumentOverview writes the study outline shown on the document preview.
func (g *Generator) DocumentOverview(ctx context.Context, title, description string, tags []string) string {
	contents := []*genai.Content{genai.NewContentFromText(overviewPrompt(title, description, tags), genai.RoleUser)}
	return g.generate(ctx, "document_overview", contents, nil, ports.OverviewErrorFallback, ports.OverviewEmptyFallback)
}

func (g *Generator) generate(ctx context.Context, kind string, contents []*genai.Content, config *genai.GenerateContentConfig, onError, onEmpty string) string {
	if g.models == nil {
		return onError
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		g.log.Warn().Err(err).Str("kind", kind).Msg("generation rate limit wait aborted")
		return onError
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		g.log.Error().Err(err).Str("kind", kind).Str("model", g.model).Msg("generation failed")
		return onError
	}
	if resp == nil {
		return onEmpty
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return onEmpty
	}
	return text
}

// historyContents maps the chat to Gemini turns. Gemini expects the first turn
// to come from the user, so the leading greeting is dropped.
func historyContents(history []domain.ChatMessage) []*genai.Content {
	out := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == domain.RoleModel {
			if len(out) == 0 {
				continue
			}
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Text, role))
	}
	return out
}

func overviewPrompt(title, description string, tags []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a concise but comprehensive academic overview and study outline for a document titled %q.\n", title)
	fmt.Fprintf(&b, "Context/Description: %q.\n", description)
	fmt.Fprintf(&b, "Tags: %s.\n\n", strings.Join(tags, ", "))
	b.WriteString(`The output will be used as a "Preview" for a student considering purchasing this document. `)
	b.WriteString("Summarize what they will learn. Use Markdown formatting with bullet points.")
	return b.String()
}
