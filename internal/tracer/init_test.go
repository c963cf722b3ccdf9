package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitTracer_DisabledIsNoop(t *testing.T) {
	for _, v := range []string{"", "false", "1"} {
		t.Run("OTEL_ENABLED="+v, func(t *testing.T) {
			t.Setenv("OTEL_ENABLED", v)

			shutdown := InitTracer()
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}
