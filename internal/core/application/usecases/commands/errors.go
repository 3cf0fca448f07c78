package commands

import "errors"

// ErrInvalidInput wraps every missing or malformed command field other than
// the quantity, which is reported as services.ErrInvalidQuantity.
var ErrInvalidInput = errors.New("invalid input")
