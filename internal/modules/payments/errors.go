package payments

import "errors"

var ErrMalformedCallback = errors.New("malformed callback payload")
