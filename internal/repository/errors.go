package repository

import "errors"

// ErrNoDB is returned while no database connection has been attached yet.
var ErrNoDB = errors.New("database not connected")
