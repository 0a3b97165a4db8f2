package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HasanApplore/IndoSup-sub000/auth"
)

// claimsKey is the gin context key holding *auth.Claims on admin routes.
const claimsKey = "adminClaims"

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.ErrorContext(c.Request.Context(), "http request", attrs...)
		case status >= http.StatusBadRequest:
			log.WarnContext(c.Request.Context(), "http request", attrs...)
		default:
			log.InfoContext(c.Request.Context(), "http request", attrs...)
		}
	}
}

// Recovery turns a handler panic into the standard 500 body.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.ErrorContext(c.Request.Context(), "handler panic",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", rec,
		)
		abort(c, http.StatusInternalServerError, "Server error")
	})
}

// RequireAdmin rejects requests without a valid bearer token.
func RequireAdmin(tokens *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// adminClaims returns the claims RequireAdmin stored, if any.
func adminClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
