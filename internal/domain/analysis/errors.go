package analysis

import "errors"

// ErrMalformedInput indicates the request failed input validation before any
// provider was contacted (invalid URL, missing image field).
var ErrMalformedInput = errors.New("malformed input")
