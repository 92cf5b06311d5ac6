package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user, assigned by the store.
	ID int64

	// Username is the unique display name chosen at registration.
	Username string

	// Email is the user's email address (unique). Used for login.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password is never stored.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
