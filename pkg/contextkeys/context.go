package contextkeys

// Custom type so our keys can never collide with keys from other packages
type contextKey string

// UserIDContextKey is the key under which the authenticated user id is stored in gin.Context
const UserIDContextKey = contextKey("user_id")

// RolesContextKey is the key under which the caller's role list is stored in gin.Context
const RolesContextKey = contextKey("roles")
