package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/metrics"
)

// codeOK labels successful calls in metrics.
const codeOK = "ok"

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and, when m is non-nil, records its count and latency.
// It logs the procedure name, duration, and any error codes/messages.
func LoggingInterceptor(logger *slog.Logger, m *metrics.Metrics) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "rpc")

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			elapsed := time.Since(start)
			duration := elapsed.Milliseconds()
			code := codeOK
			if err != nil {
				code = connect.CodeOf(err).String()
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					logger.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"duration_ms", duration,
					)
				} else {
					logger.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"duration_ms", duration,
					)
				}
			} else {
				logger.Info("RPC ok",
					"procedure", procedure,
					"duration_ms", duration,
				)
			}

			if m != nil {
				m.RPCRequests.WithLabelValues(procedure, code).Inc()
				m.RPCDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
			}

			return resp, err
		}
	}
}
