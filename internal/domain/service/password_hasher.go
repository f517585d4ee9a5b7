package service

// PasswordHasher abstracts the password hashing scheme away from the
// usecase layer.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)
	// Check reports whether the plaintext password matches the hash.
	Check(password, hash string) bool
}
