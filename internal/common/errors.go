package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Brand errors
	ErrBrandNotFound     = errors.New("brand guide not found")
	ErrInvalidBrandGuide = errors.New("brand guide data is malformed")

	// Content package errors
	ErrPackageNotFound   = errors.New("content package not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrPackageArchived   = errors.New("content package is archived")
	ErrEmptyLogEntry     = errors.New("collaboration log entry requires agent and action")

	// Generation errors
	ErrProviderUnavailable = errors.New("generation provider unavailable")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
