package auditoria

import "context"

type metaCtxKey struct{}

// RequestMeta carries the caller metadata captured for audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// WithRequestMeta stores request metadata in the context for downstream
// audit writes.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, metaCtxKey{}, meta)
}

// RequestMetaFromContext extracts previously stored request metadata.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if ctx == nil {
		return RequestMeta{}
	}
	if meta, ok := ctx.Value(metaCtxKey{}).(RequestMeta); ok {
		return meta
	}
	return RequestMeta{}
}
