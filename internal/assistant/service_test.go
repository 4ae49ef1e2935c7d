package assistant

import (
	"context"
	"testing"
	"time"

	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/common/observability"
	"neelakshi-ai/internal/intent"
	"neelakshi-ai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type fakeRetriever struct {
	rc      models.RetrievalContext
	calls   int
	intents []models.IntentCategory
	ctxErr  error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, in models.IntentCategory, u models.Utterance) models.RetrievalContext {
	f.calls++
	f.intents = append(f.intents, in)
	f.ctxErr = ctx.Err()
	rc := f.rc
	rc.Intent = in
	return rc
}

type fakeComposer struct {
	reply models.ComposedReply
	calls int
	seen  models.Utterance
}

func (f *fakeComposer) Compose(ctx context.Context, u models.Utterance, rc models.RetrievalContext) models.ComposedReply {
	f.calls++
	f.seen = u
	return f.reply
}

func newTestService(t *testing.T, r *fakeRetriever, c *fakeComposer) *Service {
	return NewService(intent.New(intent.DefaultRules...), r, c, observability.NewNoop(), logger.NewTestLogger(t))
}

func TestAnswer_EmptyInput(t *testing.T) {
	r := &fakeRetriever{}
	c := &fakeComposer{}
	svc := newTestService(t, r, c)

	for _, in := range []string{"", "   ", "\n\t"} {
		a := svc.Answer(context.Background(), in)
		assert.Equal(t, EmptyInputReply, a.Reply)
		assert.Equal(t, models.PathStaticFallback, a.Path)
		assert.NotEmpty(t, a.RequestID)
	}
	assert.Zero(t, r.calls)
	assert.Zero(t, c.calls)
}

func TestAnswer_RunsPipeline(t *testing.T) {
	r := &fakeRetriever{}
	c := &fakeComposer{reply: models.ComposedReply{Text: "Aaj ki khabar...", Path: models.PathLLMComposed, Model: "gemini-2.5-flash"}}
	svc := newTestService(t, r, c)

	a := svc.Answer(context.Background(), "  आज की खबर ")

	assert.Equal(t, "Aaj ki khabar...", a.Reply)
	assert.Equal(t, models.IntentNews, a.Intent)
	assert.Equal(t, []models.IntentCategory{models.IntentNews}, a.Candidates)
	assert.Equal(t, models.LanguageHindi, a.Language)
	assert.Equal(t, models.PathLLMComposed, a.Path)
	assert.Equal(t, "gemini-2.5-flash", a.Model)
	assert.Equal(t, []models.IntentCategory{models.IntentNews}, r.intents)
	assert.Equal(t, "आज की खबर", c.seen.Raw)
}

func TestAnswer_ReportsAllMatchingIntents(t *testing.T) {
	r := &fakeRetriever{}
	svc := newTestService(t, r, &fakeComposer{reply: models.ComposedReply{Text: "ok", Path: models.PathLLMComposed}})

	a := svc.Answer(context.Background(), "weather and cricket score news")

	assert.Equal(t, models.IntentNews, a.Intent)
	assert.Equal(t, []models.IntentCategory{models.IntentNews, models.IntentWeather, models.IntentLiveSports}, a.Candidates)
	assert.Equal(t, []models.IntentCategory{models.IntentNews}, r.intents)
}

func TestAnswer_ReusesRequestID(t *testing.T) {
	svc := newTestService(t, &fakeRetriever{}, &fakeComposer{reply: models.ComposedReply{Text: "hi", Path: models.PathLLMComposed}})

	a := svc.Answer(WithRequestID(context.Background(), "req-123"), "hello")
	assert.Equal(t, "req-123", a.RequestID)
}

func TestAnswer_IgnoresCallerCancellation(t *testing.T) {
	r := &fakeRetriever{}
	svc := newTestService(t, r, &fakeComposer{reply: models.ComposedReply{Text: "ok", Path: models.PathStaticFallback}})

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	a := svc.Answer(ctx, "weather in Jaipur")
	assert.Equal(t, "ok", a.Reply)
	assert.NoError(t, r.ctxErr)
}

func TestAnswer_RecordsStageSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracing := observability.NewTracing(1, recorder)
	defer tracing.Shutdown(context.Background())

	svc := newTestService(t, &fakeRetriever{}, &fakeComposer{reply: models.ComposedReply{Text: "ok", Path: models.PathLLMComposed}})
	svc.Answer(context.Background(), "who is the collector of Kota")

	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	require.NotEmpty(t, names)
	assert.Contains(t, names, "assistant.answer")
	assert.Contains(t, names, "stage.langdetect")
	assert.Contains(t, names, "stage.classify")
	assert.Contains(t, names, "stage.retrieve")
	assert.Contains(t, names, "stage.compose")
}
