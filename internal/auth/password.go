package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash keeps the bcrypt cost of a login attempt constant when the email
// does not resolve to an account.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("credential-equalizer"), bcrypt.DefaultCost)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash. An empty or missing hash
// never matches, but still burns a comparison so response timing does not
// reveal whether the account exists.
func VerifyPassword(plain, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
