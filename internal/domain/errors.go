package domain

import "errors"

// Sentinel errors returned by repositories. Use cases translate them into
// httperr kinds; anything else is treated as a storage failure.
var (
	ErrNotFound   = errors.New("record not found")
	ErrSlotTaken  = errors.New("slot already taken")
	ErrPhoneTaken = errors.New("phone already registered")
	ErrSlugTaken  = errors.New("slug already taken")
	ErrEmailTaken = errors.New("email already registered")
)
