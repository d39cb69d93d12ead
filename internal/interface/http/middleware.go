package http

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domaccount "example.com/storefront/internal/domain/account"
)

const profileCookie = "profile"

type ctxProfileKey struct{}

// profileMiddleware resolves the browser profile from the signed cookie and
// issues a fresh one when it is missing or invalid.
func (a *API) profileMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var profile *domaccount.Profile
		if c, err := r.Cookie(profileCookie); err == nil {
			if p, err := a.tokenSvc.ParseToken(c.Value); err == nil {
				profile = p
			}
		}

		if profile == nil {
			profile = &domaccount.Profile{ID: uuid.NewString()}
			if err := a.setProfileCookie(w, *profile); err != nil {
				a.logger.Error("issue profile cookie failed", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		ctx := context.WithValue(r.Context(), ctxProfileKey{}, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) setProfileCookie(w http.ResponseWriter, p domaccount.Profile) error {
	token, err := a.tokenSvc.GenerateToken(p)
	if err != nil {
		return err
	}
	a.writeProfileCookie(w, token)
	return nil
}

func (a *API) writeProfileCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     profileCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.profileTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func getProfile(ctx context.Context) *domaccount.Profile {
	if p, ok := ctx.Value(ctxProfileKey{}).(*domaccount.Profile); ok {
		return p
	}
	return nil
}

func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			a.logger.Info("http request",
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
