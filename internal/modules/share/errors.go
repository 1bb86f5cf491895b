package share

import "errors"

var (
	ErrShareLinkNotFound = errors.New("share link not found")
	ErrNotOwner          = errors.New("share link belongs to another user")
	ErrEmptyFavorites    = errors.New("favorites list is empty")
)
