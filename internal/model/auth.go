package model

// AuthResult is returned by signup and login.
type AuthResult struct {
	User        User
	AccessToken AccessToken
}

// Ack is a generic acknowledgement.
type Ack struct {
	Success bool
	Message string
}
