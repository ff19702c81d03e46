package service

import "oferta-studio/models"

// Session is the live editing state: one theme and one product list,
// owned by a single active user context. It is passed explicitly into the
// export pipeline rather than held as ambient state; the pipeline
// snapshots it per capture and restores any field it mutates.
type Session struct {
	Theme    *models.Theme
	Products []models.Product
}

// NewSession creates a session with the default theme and no products.
// Callers normally hydrate it from storage right after.
func NewSession() *Session {
	return &Session{Theme: models.DefaultTheme()}
}
