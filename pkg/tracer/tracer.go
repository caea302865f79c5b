package tracer

import (
	"context"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger installs a jaeger tracer as the global opentracing tracer. With an
// empty agent address tracing stays on the no-op global tracer.
func InitJaeger(service, agentAddr string) (io.Closer, error) {
	if agentAddr == "" {
		hlog.Info("jaeger agent not configured, tracing disabled")
		return nopCloser{}, nil
	}
	cfg := jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: agentAddr,
		},
	}
	t, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(t)
	hlog.Infof("jaeger tracer reporting to %s", agentAddr)
	return closer, nil
}

// ServerMiddleware opens one span per request. The span rides on ctx, so the
// gorm opentracing plugin nests every query below it.
func ServerMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		span, ctx := opentracing.StartSpanFromContext(ctx, string(c.Method())+" "+c.FullPath())
		defer span.Finish()
		ext.SpanKindRPCServer.Set(span)
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.Request.URI().Path()))

		c.Next(ctx)

		status := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(status))
		if status >= 500 {
			ext.Error.Set(span, true)
		}
	}
}
