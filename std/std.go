// Package std holds the standard library loaded by the :std command and the
// std configuration setting.
package std

import _ "embed"

//go:embed std.lc
var Source string

// Name is used for the standard library in error messages.
const Name = "<std>"
