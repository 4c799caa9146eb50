package telemetry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"proompter/model"
	"proompter/provider/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecordsNothing(t *testing.T) {
	tel, err := Init(context.Background(), t.TempDir(), "test", false)
	require.NoError(t, err)

	ctx, span := tel.StartTurn(context.Background(), false)
	tel.RecordTokens(ctx, "openai", "gpt", 10, 2)
	EndSpan(span, errors.New("ignored"))

	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestInitWritesTracesAndMetrics(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tel, err := Init(ctx, dir, "test", true)
	require.NoError(t, err)

	turnCtx, span := tel.StartTurn(ctx, true)
	p := tel.Instrument("mock", testutil.NewStaticProvider("mock-model", "reply"))
	tel.RecordTokens(turnCtx, "mock", "mock-model", 42, 3)
	out, err := p.Chat(turnCtx, testutil.SingleUserMessage("hi"), 0.5)
	require.NoError(t, err)
	assert.Equal(t, "reply", out)
	EndSpan(span, nil)

	require.NoError(t, tel.Shutdown(ctx))

	traces, err := os.ReadFile(filepath.Join(dir, "traces.log"))
	require.NoError(t, err)
	assert.Contains(t, string(traces), SpanTurn)
	assert.Contains(t, string(traces), SpanChat)

	metrics, err := os.ReadFile(filepath.Join(dir, "metrics.log"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "proompter.requests")
	assert.Contains(t, string(metrics), "proompter.request.tokens")
}

func TestInstrumentedProviderPassesErrorsThrough(t *testing.T) {
	upstream := &model.UpstreamError{Provider: "mock", StatusCode: 500, Err: errors.New("down")}
	p := Noop().Instrument("mock", testutil.NewFailingProvider("m", upstream))

	_, err := p.Chat(context.Background(), testutil.SingleUserMessage("hi"), 0)
	assert.ErrorIs(t, err, model.ErrUpstream)
	assert.Equal(t, "m", p.GetModel())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", outcome(nil))
	assert.Equal(t, "timeout", outcome(context.DeadlineExceeded))
	assert.Equal(t, "error", outcome(errors.New("x")))
}
