package service

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword genera un hash bcrypt (salteado) del password en texto plano.
// Dos llamadas con el mismo input producen hashes distintos; la unica
// comparacion confiable es CheckPassword.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara un password en texto plano contra su hash.
// Devuelve false ante cualquier mismatch, nunca un error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
