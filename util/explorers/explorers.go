package explorers

import (
	"errors"
)

var (
	// ErrNotVerified means the explorer knows the address but has no
	// verified source for it.
	ErrNotVerified = errors.New("contract source code not verified")
	ErrNoAPIKey    = errors.New("explorer api key is not set")
)
