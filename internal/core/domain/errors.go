package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrBoardNotFound = errors.New("board not found")
	ErrListNotFound  = errors.New("list not found")
	ErrCardNotFound  = errors.New("card not found")

	// ErrForbidden is returned whenever the acting user is not a member of
	// the board that owns the targeted resource.
	ErrForbidden = errors.New("access forbidden")

	ErrAlreadyMember = errors.New("user already a member")
	ErrNotMember     = errors.New("user is not a member of the board")

	ErrTitleRequired = errors.New("title is required")
)
