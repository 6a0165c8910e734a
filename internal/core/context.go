package core

import "context"

type contextKey string

const ctxKeyOperator contextKey = "audit_operator"

// ContextWithOperator records who is performing an action, for audit logging.
func ContextWithOperator(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxKeyOperator, name)
}

// OperatorFromContext extracts the operator name from context.
func OperatorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyOperator).(string); ok {
		return v
	}
	return ""
}
