package shared

import "context"

// Identity is the decoded token identity of a user.
type Identity struct {
	UserID   int64
	Email    string
	Role     string
	BranchID *int64
}

// RequestIdentity pairs the authenticated identity with the effective one.
// Effective differs from Original only while a Super Admin views the system
// as another user. Authorization decisions must always read Original;
// Effective is display context only.
type RequestIdentity struct {
	Original  Identity
	Effective Identity
}

// Impersonating reports whether the effective identity differs from the
// authenticated one.
func (ri RequestIdentity) Impersonating() bool {
	return ri.Original.UserID != ri.Effective.UserID
}

type identityContextKey struct{}

// ContextWithIdentity stores the request identity in context.
func ContextWithIdentity(ctx context.Context, ri RequestIdentity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, ri)
}

// IdentityFromContext extracts the request identity from context.
func IdentityFromContext(ctx context.Context) (RequestIdentity, bool) {
	ri, ok := ctx.Value(identityContextKey{}).(RequestIdentity)
	return ri, ok
}
