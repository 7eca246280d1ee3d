package model

import "time"

// Subscription mirrors the 'subscriptions' table for the newsletter.
type Subscription struct {
	ID                uint64    `json:"id"`
	Email             string    `json:"email"`
	Activo            bool      `json:"activo"`
	FechaSuscripcion  time.Time `json:"fecha_suscripcion"`
}
