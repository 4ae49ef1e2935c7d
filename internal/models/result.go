// internal/models/result.go
package models

import (
	"strings"
	"time"

	apperrors "neelakshi-ai/internal/common/errors"
)

// ProviderResult is either a success carrying a non-empty Payload, or a
// failure carrying one of the four provider reasons. Err is kept for logs.
type ProviderResult struct {
	Source  string
	Payload Payload
	Reason  apperrors.ErrorCode
	Err     error
}

// Success wraps payload. An empty payload is reported as NOT_FOUND so callers
// never see an empty success.
func Success(source string, payload Payload) ProviderResult {
	if payload == nil || payload.Empty() {
		return Failure(source, apperrors.NewNotFoundError(source, "empty payload"))
	}
	return ProviderResult{Source: source, Payload: payload}
}

func Failure(source string, err error) ProviderResult {
	if err == nil {
		err = apperrors.NewUpstreamError(source, nil)
	}
	return ProviderResult{
		Source: source,
		Reason: apperrors.Reason(err),
		Err:    err,
	}
}

func (r ProviderResult) OK() bool {
	return r.Reason == "" && r.Payload != nil && !r.Payload.Empty()
}

// Outcome is the metric label for this result: "success" or the lowercased
// failure reason.
func (r ProviderResult) Outcome() string {
	if r.OK() {
		return "success"
	}
	return strings.ToLower(string(r.Reason))
}

// StepAttempt records one fallback-chain step for logs and metrics.
type StepAttempt struct {
	Step     string        `json:"step"`
	Provider string        `json:"provider"`
	Outcome  string        `json:"outcome"`
	Duration time.Duration `json:"duration"`
}

// RetrievalContext holds the successes gathered for one intent, in order.
type RetrievalContext struct {
	Intent   IntentCategory
	Results  []ProviderResult
	Attempts []StepAttempt
}

func (c RetrievalContext) Empty() bool {
	return len(c.Results) == 0
}

func (c RetrievalContext) Snippets() []string {
	var out []string
	for _, r := range c.Results {
		if !r.OK() {
			continue
		}
		for _, s := range r.Payload.Snippets() {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

type ReplyPath string

const (
	PathLLMComposed    ReplyPath = "llm-composed"
	PathRawRetrieval   ReplyPath = "raw-retrieval"
	PathStaticFallback ReplyPath = "static-fallback"
)

type ComposedReply struct {
	Text  string
	Path  ReplyPath
	Model string
}
