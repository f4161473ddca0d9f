package tokens

import "context"

type ctxKey struct{}

// IntoContext кладёт request-scoped Store в контекст: один и тот же Store
// видят мидлвары, хендлеры и исходящий транспорт одного запроса.
func IntoContext(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext достаёт Store из контекста.
func FromContext(ctx context.Context) (Store, bool) {
	if v := ctx.Value(ctxKey{}); v != nil {
		if s, ok := v.(Store); ok && s != nil {
			return s, true
		}
	}

	return nil, false
}
