package codegen

import (
	"strings"
)

const invalidIdentPlaceholder = "_v"

var jsReservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "let": true, "new": true, "return": true, "super": true,
	"switch": true, "this": true, "throw": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true, "yield": true,
}

// SanitizeIdentifier maps any source identifier to a valid target identifier:
// disallowed characters become '_', runs of '_' collapse, leading/trailing '_'
// are stripped, a digit-leading result gets a '_' prefix and an entirely
// invalid name becomes a fixed placeholder. Reserved words of the target
// language get a trailing '_'.
func SanitizeIdentifier(name string) string {
	var b strings.Builder

	for _, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	sanitized := b.String()

	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_")

	if sanitized == "" {
		return invalidIdentPlaceholder
	}
	if sanitized[0] >= '0' && sanitized[0] <= '9' {
		sanitized = "_" + sanitized
	}
	if jsReservedWords[sanitized] {
		sanitized += "_"
	}

	return sanitized
}
