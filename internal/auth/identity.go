package auth

import (
	"context"
	"strings"

	"github.com/gofrs/uuid"
)

type Role string

const (
	RoleManager  Role = "manager"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Is compares roles case-insensitively. Stored role values come from a
// closed set but historical rows carry mixed casing.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

func (r Role) OneOf(roles ...Role) bool {
	for _, candidate := range roles {
		if r.Is(candidate) {
			return true
		}
	}
	return false
}

// Identity is the verified caller of a request. It is constructed once by
// the Authenticate middleware and passed through the request context;
// nothing downstream mutates it.
type Identity struct {
	ID       uuid.UUID
	Username string
	Role     Role
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
