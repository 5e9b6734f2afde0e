package constants

// Principal roles
const (
	RoleOwner  = "owner"
	RoleCaller = "caller"
)

// Auth types
const (
	AuthTypeAPIKey = "api_key"
	AuthTypeJWT    = "jwt"
)
