package middleware

import (
	"context"
	"net/http"
	"strings"

	"cultivo-console/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// debugUserHeader inyecta un user id en modo dev (verifier nil). Nunca se
// lee cuando hay un verifier real configurado.
const debugUserHeader = "X-Debug-User-ID"

// AuthContext resuelve la identidad del request y la deja en el contexto.
// Con verifier, verifica el Bearer token; sin verifier corre en modo dev y
// acepta el header de debug. En ningún caso corta el request: cada handler
// decide si exige un actor.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(debugUserHeader)); uid != "" {
					next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), auth.Claims{UserID: uid})))
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
				// Token inválido = request anónimo; el handler devuelve 401
				// si la operación necesita actor.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

func withClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
