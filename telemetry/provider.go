package telemetry

import (
	"context"

	"proompter/model"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedProvider wraps a model.Provider with a provider.chat span and
// the request counter.
type InstrumentedProvider struct {
	model.Provider
	name string
	t    *Telemetry
}

// Instrument wraps p. name identifies the provider in span and metric attributes.
func (t *Telemetry) Instrument(name string, p model.Provider) *InstrumentedProvider {
	return &InstrumentedProvider{Provider: p, name: name, t: t}
}

func (p *InstrumentedProvider) Chat(ctx context.Context, messages []model.Message, temperature float64) (string, error) {
	modelName := p.GetModel()
	ctx, span := p.t.tracer.Start(ctx, SpanChat,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("provider", p.name),
			attribute.String("model", modelName),
			attribute.Int("messages", len(messages)),
			attribute.Float64("temperature", temperature),
		),
	)

	content, err := p.Provider.Chat(ctx, messages, temperature)
	p.t.countRequest(ctx, p.name, modelName, err)
	if err == nil {
		span.SetAttributes(attribute.Int("response.length", len(content)))
	}
	EndSpan(span, err)
	return content, err
}
