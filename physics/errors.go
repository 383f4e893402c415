package physics

import "errors"

var (
	ErrBodyExists = errors.New("entity already has a body")
	ErrNoEntity   = errors.New("entity does not exist")
)
