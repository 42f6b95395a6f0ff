package core

const (
	// MinNameLength is the shortest legal player name.
	MinNameLength = 3
	// MaxNameLength is the longest legal player name.
	MaxNameLength = 16
)

// IsLegal reports whether name can be registered as a player name:
// 3-16 characters drawn from ASCII letters of either case, digits and underscore.
func IsLegal(name string) bool {
	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return false
	}
	// Every legal rune is one byte, so the byte length above is the rune count.
	for _, r := range name {
		if !isLegalRune(r) {
			return false
		}
	}
	return true
}

func isLegalRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
