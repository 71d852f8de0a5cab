package repository

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrContactNotFound       = errors.New("contact not found")
	ErrTokenNotFound         = errors.New("token not found")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicateContactPhone = errors.New("contact phone already exists for this user")
	ErrDuplicateContactEmail = errors.New("contact email already exists for this user")
)
