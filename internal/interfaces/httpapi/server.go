package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicSeasonRoutes(mux, handler)
	registerInternalSeasonRoutes(mux, handler, internalJobToken)
	registerInternalIngestionRoutes(mux, handler, internalJobToken)
	registerInternalJobRoutes(mux, handler, internalJobToken)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
