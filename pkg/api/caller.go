package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/core/services"
)

// CallerHeader carries the email of the authenticated user, set by the
// fronting identity proxy
const CallerHeader = "X-User-Email"

type ctxKey string

const callerKey ctxKey = "caller"

// CurrentCaller returns the caller resolved by RequireCaller
func CurrentCaller(r *http.Request) (*model.Caller, bool) {
	c, ok := r.Context().Value(callerKey).(*model.Caller)
	return c, ok
}

// RequireCaller resolves the caller from CallerHeader and rejects requests
// from unknown users with 401.
func (h *Handler) RequireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get(CallerHeader)

		caller, err := services.ResolveCaller(r.Context(), h.Store, email)
		if err != nil {
			h.Log.Error("failed to resolve caller", zap.String("email", email), zap.Error(err))
			writeMessage(w, http.StatusInternalServerError, services.MsgInternal)
			return
		}
		if caller == nil {
			h.Log.Debug("unknown caller", zap.String("email", email))
			writeMessage(w, http.StatusUnauthorized, services.MsgUserNotFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey, caller)))
	})
}
