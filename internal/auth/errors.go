package auth

import "errors"

var (
	// ErrInvalidToken is returned when the provided token is invalid
	ErrInvalidToken = errors.New("invalid token")
	// ErrNoWalletAddress is returned when a valid token carries no usable wallet address
	ErrNoWalletAddress = errors.New("no wallet address in token claims")
)
