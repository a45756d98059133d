package repository

import "errors"

// ErrConflict is returned when a write would break a uniqueness rule,
// such as a second code for one email or a second active subscription.
var ErrConflict = errors.New("record already exists")
