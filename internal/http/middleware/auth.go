package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ecocoleta/api/internal/auth"
)

type contextKey string

const (
	ContextKeySubject contextKey = "subject"
	ContextKeyNome    contextKey = "nome"
	ContextKeyTipo    contextKey = "tipo"
)

// Auth valida o token Bearer e injeta as claims no contexto. Header
// ausente, prefixo errado ou token rejeitado resultam sempre em 401 com
// a mesma mensagem.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "token inválido ou expirado")
				return
			}

			claims, err := jwtManager.ParseAndValidate(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "token inválido ou expirado")
				return
			}

			id, err := claims.SubjectID()
			if err != nil {
				writeError(w, http.StatusUnauthorized, "token inválido ou expirado")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, id)
			ctx = context.WithValue(ctx, ContextKeyNome, claims.Nome)
			ctx = context.WithValue(ctx, ContextKeyTipo, claims.Tipo)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject recupera o id da conta autenticada do contexto.
func GetSubject(ctx context.Context) int64 {
	val, _ := ctx.Value(ContextKeySubject).(int64)
	return val
}

// GetNome recupera o nome de exibição do contexto.
func GetNome(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyNome).(string)
	return val
}

// GetTipo recupera o tipo de conta do contexto.
func GetTipo(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyTipo).(string)
	return val
}

// RequireEmpresa garante que a conta autenticada é uma empresa. Token
// válido de outro tipo resulta em 403.
func RequireEmpresa(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.EqualFold(GetTipo(r.Context()), auth.TipoEmpresa) {
			writeError(w, http.StatusForbidden, "apenas empresas autenticadas podem acessar")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"message": message})
}
