package telemetry_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/hoard/internal/adapters/telemetry"
	"go.trai.ch/hoard/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Debug("span finished", "span", "cache.probe", "duration", gomock.Any(), "paths", "2").Times(1)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockLogger)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")
	_, span := tracer.Start(context.Background(), "cache.probe")
	span.SetAttribute("paths", 2)
	span.End()
}

func TestBridge_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Debug("span failed", "span", "cache.ledger", "duration", gomock.Any(), "error", "read failed").Times(1)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockLogger)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "cache.ledger")
	span.SetStatus(codes.Error, "read failed")
	span.End()
}

func TestBridge_NilLogger(_ *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	span.End()
}

func TestSetup(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("span finished", "span", "global", "duration", gomock.Any()).Times(1)

	tp := telemetry.Setup(telemetry.NewBridge(mockLogger))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer("test").Start(context.Background(), "global")
	span.End()
}
