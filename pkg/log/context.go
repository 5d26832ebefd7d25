package log

import "context"

type fieldsKey struct{}

// WithFields returns a context carrying extra key/value pairs that every
// logger call made with it will include.
func WithFields(ctx context.Context, kv ...any) context.Context {
	if len(kv) == 0 {
		return ctx
	}
	existing := fieldsFromContext(ctx)
	merged := make([]any, 0, len(existing)+len(kv))
	merged = append(merged, existing...)
	merged = append(merged, kv...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func fieldsFromContext(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(fieldsKey{}).([]any); ok {
		return v
	}
	return nil
}
