package domain

import "time"

// User representa una cuenta registrada en la plataforma.
// El JSON expone `_id` para mantener compatibilidad con los clientes existentes.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Username     string    `json:"username,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}
