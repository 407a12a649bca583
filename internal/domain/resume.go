package domain

import (
	"encoding/json"
	"time"
)

// Resume es un documento de curriculum perteneciente a un usuario.
// Sections guarda el contenido armado por el cliente (perfil, educacion,
// proyectos, experiencia, skills) como JSON opaco.
type Resume struct {
	ID        string          `json:"_id"`
	UserID    string          `json:"userId"`
	Title     string          `json:"title"`
	Sections  json.RawMessage `json:"sections,omitempty"`
	Verified  bool            `json:"verified"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
