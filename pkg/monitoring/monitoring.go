package monitoring

import (
	"context"

	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

type OpenTelemetry struct {
	serviceName string
	environment string
	projectID   string

	tracerProvider *sdktrace.TracerProvider
}

func NewOpenTelemetry(serviceName, environment, projectID string) *OpenTelemetry {
	return &OpenTelemetry{
		serviceName: serviceName,
		environment: environment,
		projectID:   projectID,
	}
}

func (m *OpenTelemetry) Start(ctx context.Context) error {
	exporter, err := texporter.New(texporter.WithProjectID(m.projectID))
	if err != nil {
		return err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(m.serviceName),
			attribute.String("environment", m.environment),
		),
	)
	if err != nil {
		return err
	}

	m.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(m.tracerProvider)

	return nil
}

func (m *OpenTelemetry) Stop(ctx context.Context) error {
	if m.tracerProvider == nil {
		return nil
	}

	return m.tracerProvider.Shutdown(ctx)
}
