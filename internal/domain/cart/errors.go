package cart

import "errors"

var ErrMalformedState = errors.New("malformed cart state")
