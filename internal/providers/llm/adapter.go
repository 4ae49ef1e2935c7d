// internal/providers/llm/adapter.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	apperrors "neelakshi-ai/internal/common/errors"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/models"
)

const (
	ProviderName = "llm"

	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

var openAIModel = regexp.MustCompile(`^(gpt-|chatgpt-|o[0-9])`)

// Prompt is a composition prompt: system instructions plus the user turn.
type Prompt struct {
	System string
	User   string
}

type Backend interface {
	Name() string
	Complete(ctx context.Context, model string, prompt Prompt) (string, error)
}

type route struct {
	model   string
	backend Backend
}

// Adapter tries an ordered list of models and accepts the first non-empty
// answer. A failed model is never retried.
type Adapter struct {
	config *Config
	routes []route
	logger logger.Logger
}

// BackendFor names the backend that serves model.
func BackendFor(model string) string {
	if openAIModel.MatchString(strings.ToLower(model)) {
		return BackendOpenAI
	}
	return BackendGemini
}

// NewAdapter routes each configured model to its backend. A nil backend means
// that backend has no credentials; models routed to it are dropped. It is an
// error for no model to remain.
func NewAdapter(config *Config, gemini, openai Backend, log logger.Logger) (*Adapter, error) {
	backends := map[string]Backend{}
	if gemini != nil {
		backends[BackendGemini] = gemini
	}
	if openai != nil {
		backends[BackendOpenAI] = openai
	}

	log = log.With(map[string]interface{}{"provider": ProviderName})

	var routes []route
	for _, m := range config.Models {
		b, ok := backends[BackendFor(m)]
		if !ok {
			log.Warn("model skipped, backend has no credentials", map[string]interface{}{
				"model":   m,
				"backend": BackendFor(m),
			})
			continue
		}
		routes = append(routes, route{model: m, backend: b})
	}

	if len(routes) == 0 {
		return nil, apperrors.NewLLMUnconfiguredError(fmt.Sprintf("no usable model among %v", config.Models))
	}

	return &Adapter{config: config, routes: routes, logger: log}, nil
}

func (a *Adapter) Name() string { return ProviderName }

// Models returns the usable model identifiers in fallback order.
func (a *Adapter) Models() []string {
	out := make([]string, len(a.routes))
	for i, r := range a.routes {
		out[i] = r.model
	}
	return out
}

func (a *Adapter) Complete(ctx context.Context, prompt Prompt) models.ProviderResult {
	allTimedOut := true
	var errs []error

	for _, r := range a.routes {
		callCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
		text, err := r.backend.Complete(callCtx, r.model, prompt)
		timedOut := callCtx.Err() == context.DeadlineExceeded
		cancel()

		if err != nil {
			if !(timedOut || apperrors.IsTimeout(err)) {
				allTimedOut = false
			}
			errs = append(errs, fmt.Errorf("%s: %w", r.model, err))
			a.logger.Warn("model failed", map[string]interface{}{
				"model": r.model,
				"error": err.Error(),
			})
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			allTimedOut = false
			errs = append(errs, fmt.Errorf("%s: empty response", r.model))
			a.logger.Warn("model returned empty response", map[string]interface{}{
				"model": r.model,
			})
			continue
		}

		a.logger.Info("completion generated", map[string]interface{}{
			"model":  r.model,
			"length": len(text),
		})
		return models.Success(ProviderName, &models.Completion{Model: r.model, Text: text})
	}

	joined := errors.Join(errs...)
	if allTimedOut {
		return models.Failure(ProviderName, apperrors.NewTimeoutError(ProviderName, joined))
	}
	return models.Failure(ProviderName, apperrors.NewUpstreamError(ProviderName, joined))
}
