package dbmetrics

import "context"

// ctxKey приватный тип ключа контекста
type ctxKey struct{}

// executorKey ключ, под которым в контексте хранится активная транзакция
var executorKey = ctxKey{}

// WithExecutor кладет активную транзакцию в контекст
// Используется transaction manager-ами, чтобы репозитории выполняли
// запросы внутри той же транзакции
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, executorKey, tx)
}

// GetExecutor возвращает активную транзакцию из контекста,
// либо переданный executor по умолчанию, если транзакции нет
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(executorKey).(TxExecutor); ok {
		return tx
	}
	return def
}

// IsInTransaction проверяет, есть ли в контексте активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(TxExecutor)
	return ok
}
