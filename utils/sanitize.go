package utils

import "github.com/microcosm-cc/bluemonday"

var (
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML content to prevent XSS attacks while keeping safe markup.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// StripTags removes all markup. Used for plain-text fields such as chat
// messages and profile attributes.
func StripTags(input string) string {
	return stripper.Sanitize(input)
}
