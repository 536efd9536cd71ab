package model

import (
	"context"
	"time"
)

// Role is what a signed-in user acts as.
type Role string

const (
	RoleRetailer   Role = "retailer"
	RoleWholesaler Role = "wholesaler"
	RoleAdmin      Role = "admin"
)

// User is an account that can sign in.
type User struct {
	ID           string    `json:"id" db:"id"`
	Phone        string    `json:"phone" db:"phone"`
	Name         string    `json:"name" db:"name"`
	Role         Role      `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Actor identifies who performs an operation. It is passed explicitly to every service call.
type Actor struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// Is reports whether the actor holds the given role.
func (a Actor) Is(role Role) bool {
	return a.Role == role
}

// LoginRequest represents the password-login payload.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token returned on a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying the actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor stored in ctx, if any.
func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
