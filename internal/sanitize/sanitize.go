// Package sanitize neutralizes markup in user-supplied text before it is
// sent to clients.
package sanitize

import "strings"

var replacer = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Text escapes angle brackets so that no tag in s can be interpreted by a
// browser. Ampersands are left alone, which keeps Text idempotent.
func Text(s string) string {
	return replacer.Replace(s)
}

// Ptr is Text for optional columns; nil becomes "".
func Ptr(s *string) string {
	if s == nil {
		return ""
	}

	return Text(*s)
}
