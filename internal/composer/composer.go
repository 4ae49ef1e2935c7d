// Package composer turns retrieved context into the single reply shown to the
// user.
package composer

import (
	"context"
	"strings"
	"time"

	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/models"
	"neelakshi-ai/internal/providers/llm"
)

const (
	ApologyHindi   = "क्षमा करें, अभी मैं इस सवाल का जवाब नहीं ढूँढ पाई। कृपया थोड़ी देर बाद फिर से पूछें।"
	ApologyEnglish = "Sorry, I couldn't find an answer to that right now. Please try again in a little while."
)

type Completer interface {
	Complete(ctx context.Context, prompt llm.Prompt) models.ProviderResult
}

type Composer struct {
	llm    Completer
	now    func() time.Time
	logger logger.Logger
}

func New(completer Completer, log logger.Logger) *Composer {
	return &Composer{
		llm:    completer,
		now:    time.Now,
		logger: log.With(map[string]interface{}{"component": "composer"}),
	}
}

// WithClock replaces the clock used for the date in prompts.
func (c *Composer) WithClock(now func() time.Time) *Composer {
	c.now = now
	return c
}

// Apology is the canned reply in the utterance language.
func Apology(lang models.Language) string {
	if lang == models.LanguageHindi {
		return ApologyHindi
	}
	return ApologyEnglish
}

// Compose always tries the language model first. On failure it returns the
// retrieved snippets verbatim, and with nothing retrieved the apology. The
// reply text is never empty.
func (c *Composer) Compose(ctx context.Context, u models.Utterance, rc models.RetrievalContext) models.ComposedReply {
	if c.llm != nil {
		prompt := BuildPrompt(u, rc, c.now())
		result := c.llm.Complete(ctx, prompt)
		if result.OK() {
			if completion, ok := result.Payload.(*models.Completion); ok && strings.TrimSpace(completion.Text) != "" {
				return models.ComposedReply{
					Text:  completion.Text,
					Path:  models.PathLLMComposed,
					Model: completion.Model,
				}
			}
		}

		fields := map[string]interface{}{"reason": string(result.Reason)}
		if result.Err != nil {
			fields["error"] = result.Err.Error()
		}
		c.logger.Warn("language model unavailable, degrading reply", fields)
	}

	if raw := strings.Join(rc.Snippets(), "\n"); raw != "" {
		return models.ComposedReply{Text: raw, Path: models.PathRawRetrieval}
	}

	return models.ComposedReply{Text: Apology(u.Language), Path: models.PathStaticFallback}
}
