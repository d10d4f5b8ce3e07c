package operatorauth

import "context"

type identityContextKey string

const identityKey identityContextKey = "operator_identity"

// Identity is the authenticated operator threaded through the request
// context. Mutating services stamp it into matchedBy/unmatchedBy/updatedBy
// fields instead of defaulting to a hardcoded operator name.
type Identity struct {
	Operator string
	SID      string
	Role     string
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
