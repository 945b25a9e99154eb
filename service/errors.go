package service

import "errors"

var (
	ErrProfileNotFound         = errors.New("no profile available")
	ErrUserNotFound            = errors.New("user not found")
	ErrContactNotFound         = errors.New("contact not found")
	ErrAlreadyContact          = errors.New("already a contact")
	ErrSelfContact             = errors.New("cannot add yourself as a contact")
	ErrInvalidField            = errors.New("unknown profile field")
	ErrInvalidRelationshipType = errors.New("invalid relationship type")
	ErrInvalidProfile          = errors.New("invalid profile data")
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrInvitationExpired       = errors.New("invitation expired")
	ErrEmailTaken              = errors.New("email already in use")
	ErrInvalidCredentials      = errors.New("invalid email or password")
)
