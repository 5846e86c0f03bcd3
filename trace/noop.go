// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"go.opentelemetry.io/otel/trace/noop"

	oteltrace "go.opentelemetry.io/otel/trace"
)

var _ Tracer = (*noOpTracer)(nil)

// noOpTracer is an implementation of Tracer that does nothing.
type noOpTracer struct {
	oteltrace.Tracer
}

func newNoOpTracer(name string) *noOpTracer {
	return &noOpTracer{Tracer: noop.NewTracerProvider().Tracer(name)}
}

func (noOpTracer) Close() error {
	return nil
}
