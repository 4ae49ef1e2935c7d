// Package assistant answers one user message by running it through language
// detection, intent classification, retrieval and composition.
package assistant

import (
	"context"
	"strings"
	"time"

	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/common/metrics"
	"neelakshi-ai/internal/common/observability"
	"neelakshi-ai/internal/langdetect"
	"neelakshi-ai/internal/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// EmptyInputReply is returned for blank messages without calling any provider.
const EmptyInputReply = "Please say something 😊"

// Classifier picks the intent for an utterance. Candidates lists every
// matching intent in priority order.
type Classifier interface {
	Classify(u models.Utterance) models.IntentCategory
	Candidates(u models.Utterance) []models.IntentCategory
}

type Retriever interface {
	Retrieve(ctx context.Context, intent models.IntentCategory, u models.Utterance) models.RetrievalContext
}

type Composer interface {
	Compose(ctx context.Context, u models.Utterance, rc models.RetrievalContext) models.ComposedReply
}

type Answer struct {
	Reply      string                  `json:"reply"`
	Intent     models.IntentCategory   `json:"intent"`
	Candidates []models.IntentCategory `json:"candidates,omitempty"`
	Language   models.Language         `json:"language"`
	Path       models.ReplyPath        `json:"path"`
	Model      string                  `json:"model,omitempty"`
	RequestID  string                  `json:"requestId"`
	Attempts   []models.StepAttempt    `json:"attempts,omitempty"`
}

type Service struct {
	classifier Classifier
	retriever  Retriever
	composer   Composer
	obs        *observability.Observability
	logger     logger.Logger
}

func NewService(classifier Classifier, retriever Retriever, composer Composer, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		classifier: classifier,
		retriever:  retriever,
		composer:   composer,
		obs:        obs,
		logger:     log.With(map[string]interface{}{"component": "assistant"}),
	}
}

type requestIDKey struct{}

// WithRequestID attaches an id that Answer reuses instead of minting one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Answer produces the reply for text. Caller cancellation is not propagated:
// once started, a request runs until its provider timeouts or chains finish.
func (s *Service) Answer(ctx context.Context, text string) Answer {
	ctx = context.WithoutCancel(ctx)

	requestID := RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	log := s.logger.With(map[string]interface{}{"requestId": requestID})

	text = strings.TrimSpace(text)
	if text == "" {
		log.Info("empty message", nil)
		metrics.RequestsTotal.WithLabelValues("none", string(models.PathStaticFallback)).Inc()
		return Answer{
			Reply:     EmptyInputReply,
			Language:  models.LanguageUnknown,
			Path:      models.PathStaticFallback,
			RequestID: requestID,
		}
	}

	metrics.RequestsActive.Inc()
	defer metrics.RequestsActive.Dec()
	started := time.Now()

	tracer := otel.Tracer(observability.TracerName)
	ctx, span := tracer.Start(ctx, "assistant.answer")
	defer span.End()
	span.SetAttributes(attribute.String("request.id", requestID))

	var u models.Utterance
	s.stage(ctx, "langdetect", func(context.Context) {
		u = langdetect.NewUtterance(text)
	})

	var (
		intent     models.IntentCategory
		candidates []models.IntentCategory
	)
	s.stage(ctx, "classify", func(context.Context) {
		intent = s.classifier.Classify(u)
		candidates = s.classifier.Candidates(u)
	})

	var rc models.RetrievalContext
	s.stage(ctx, "retrieve", func(ctx context.Context) {
		rc = s.retriever.Retrieve(ctx, intent, u)
	})

	var reply models.ComposedReply
	s.stage(ctx, "compose", func(ctx context.Context) {
		reply = s.composer.Compose(ctx, u, rc)
	})

	elapsed := time.Since(started)
	span.SetAttributes(
		attribute.String("intent", string(intent)),
		attribute.Int("intent.candidates", len(candidates)),
		attribute.String("language", string(u.Language)),
		attribute.String("path", string(reply.Path)),
	)
	metrics.RequestsTotal.WithLabelValues(string(intent), string(reply.Path)).Inc()
	metrics.RequestDuration.WithLabelValues(string(intent)).Observe(elapsed.Seconds())

	log.Info("request answered", map[string]interface{}{
		"intent":     string(intent),
		"language":   string(u.Language),
		"path":       string(reply.Path),
		"model":      reply.Model,
		"steps":      len(rc.Attempts),
		"durationMs": elapsed.Milliseconds(),
	})

	return Answer{
		Reply:      reply.Text,
		Intent:     intent,
		Candidates: candidates,
		Language:   u.Language,
		Path:       reply.Path,
		Model:      reply.Model,
		RequestID:  requestID,
		Attempts:   rc.Attempts,
	}
}

func (s *Service) stage(ctx context.Context, name string, fn func(ctx context.Context)) {
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "stage."+name)
	start := time.Now()
	fn(ctx)
	s.obs.RecordStage(ctx, name, time.Since(start))
	span.End()
}
