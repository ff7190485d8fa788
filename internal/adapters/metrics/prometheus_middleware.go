package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/gridstock/internal/application/common"
)

// PrometheusMiddleware records the duration and outcome of every request sent
// through the mediator. A nil collector disables it.
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(extractCommandName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

// extractCommandName turns "*commands.PushCommand" into "PushCommand"
func extractCommandName(request common.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
