package domain

import (
	"time"
)

type Activity struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"usuarioId,omitempty"`
	UserName  string    `json:"usuarioNombre,omitempty"`
	Action    string    `json:"accion"`
	Detail    string    `json:"detalle"`
	CreatedAt time.Time `json:"fecha"`
}
