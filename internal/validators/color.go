package validators

import "regexp"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor aceita #rgb e #rrggbb.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}
