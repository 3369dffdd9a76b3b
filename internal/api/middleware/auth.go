package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/campuscare/PSC-SchedulingService/internal/api/handlers"
	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// Заголовки аутентификации, проставляемые API gateway
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type ctxKey string

const actorKey ctxKey = "actor"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает идентичность вызывающего из заголовков gateway
// и кладёт её в контекст запроса. Запросы без валидной идентичности
// отклоняются с 401
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get(HeaderUserID)
			roleStr := r.Header.Get(HeaderUserRole)

			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("Auth: missing or invalid %s header: %q", HeaderUserID, userIDStr)
				handlers.RespondUnauthorized(w, "не авторизован")
				return
			}

			if !domain.IsValidRole(roleStr) {
				logger.Warn("Auth: invalid %s header: %q", HeaderUserRole, roleStr)
				handlers.RespondUnauthorized(w, "не авторизован")
				return
			}

			actor := domain.Actor{
				UserID: userID,
				Role:   domain.Role(roleStr),
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActor извлекает идентичность вызывающего из контекста запроса
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
