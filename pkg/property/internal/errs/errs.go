// Package errs holds the error roots shared by property and the packages it
// depends on.
package errs

import "errors"

var Configuration = errors.New("property: configuration error")
