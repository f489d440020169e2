package utils

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

// StripTags removes every HTML tag from input. Entities escaped by bluemonday
// are decoded again so "Won't" stays "Won't".
func StripTags(input string) string {
	return html.UnescapeString(sanitizer.Sanitize(input))
}
