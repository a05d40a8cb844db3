package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type (
	Counter   = metric.Int64Counter
	Histogram = metric.Int64Histogram
)

// Measurer counts operations and records their duration in milliseconds.
type Measurer struct {
	counter    Counter
	histogram  Histogram
	attributes []attribute.KeyValue
}

func NewMeasurer(meter Meter, name string, attrs ...attribute.KeyValue) (*Measurer, error) {
	counter, err := meter.Int64Counter(name)
	if err != nil {
		return nil, err
	}
	histogram, err := meter.Int64Histogram(name+".duration", metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	return &Measurer{
		counter:    counter,
		histogram:  histogram,
		attributes: attrs,
	}, nil
}

// Measurement is a single measured operation.
type Measurement struct {
	m         *Measurer
	startTime time.Time
}

func (m *Measurer) Start() Measurement {
	return Measurement{m: m, startTime: time.Now()}
}

// Finish records the operation with the attributes known only at its end.
func (s Measurement) Finish(ctx context.Context, attrs ...attribute.KeyValue) {
	all := make([]attribute.KeyValue, 0, len(s.m.attributes)+len(attrs))
	all = append(all, s.m.attributes...)
	all = append(all, attrs...)
	opt := metric.WithAttributeSet(attribute.NewSet(all...))

	s.m.counter.Add(ctx, 1, opt)
	s.m.histogram.Record(ctx, time.Since(s.startTime).Milliseconds(), opt)
}
