package auth

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}

// RegisterInput carries the fields for self-service registration. Accounts
// created this way are never admins.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// TokenDTO is the success shape for both login and registration.
type TokenDTO struct {
	Token string `json:"token"`
}
