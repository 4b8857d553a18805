package middleware

import (
	"context"
	"net/http"
	"strings"

	"medication-adherence/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader inyecta el usuario en modo dev (sin verifier).
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: si viene X-Debug-User-ID => setea claims.
// - Si no hay claims, el request sigue igual; los handlers deciden si exigen auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), auth.Claims{UserID: uid})))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// token inválido = anónimo; el handler responde 401.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims guarda claims en ctx (también lo usan los tests).
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// UserID devuelve el usuario autenticado, o false si no hay.
func UserID(ctx context.Context) (string, bool) {
	c, ok := GetClaims(ctx)
	if !ok || strings.TrimSpace(c.UserID) == "" {
		return "", false
	}
	return c.UserID, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
