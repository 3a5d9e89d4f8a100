package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is the only error kind the services produce: the record a call
// targets does not exist. Test for it with errors.Is.
var ErrNotFound = errors.New("not found")

func notFound(entity, id string) error {
	return fmt.Errorf("%s %q %w", entity, id, ErrNotFound)
}
