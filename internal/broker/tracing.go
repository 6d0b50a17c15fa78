package broker

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
)

// InjectTraceContext packs the current span's W3C trace context into AMQP
// headers so a consumer on the other side of the exchange can continue the
// same trace.
func InjectTraceContext(ctx context.Context) amqp.Table {
	headers := make(amqp.Table)
	otel.GetTextMapPropagator().Inject(ctx, &headersCarrier{headers})
	return headers
}

// ExtractTraceContext pulls a W3C trace context out of AMQP headers and
// attaches it to ctx.
func ExtractTraceContext(ctx context.Context, headers amqp.Table) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, &headersCarrier{headers})
}

// headersCarrier adapts amqp.Table to propagation.TextMapCarrier.
type headersCarrier struct {
	headers amqp.Table
}

func (c *headersCarrier) Get(key string) string {
	if v, ok := c.headers[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (c *headersCarrier) Set(key, value string) {
	c.headers[key] = value
}

func (c *headersCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for k := range c.headers {
		keys = append(keys, k)
	}
	return keys
}
