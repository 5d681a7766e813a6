package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var ErrInvalidEmoji = errors.New("invalid emoji")

var customEmojiPattern = regexp.MustCompile(`^<(a?):([A-Za-z0-9_]{2,32}):([0-9]+)>$`)

// Emoji is either a unicode emoji (ID is zero) or a custom guild emoji.
type Emoji struct {
	ID       Snowflake
	Name     string
	Animated bool
}

// ParseEmoji accepts a custom emoji mention such as "<:name:123>" or
// "<a:name:123>", or a single unicode emoji.
func ParseEmoji(s string) (Emoji, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "<") {
		m := customEmojiPattern.FindStringSubmatch(s)
		if m == nil {
			return Emoji{}, fmt.Errorf("%w: %q", ErrInvalidEmoji, s)
		}

		id, err := ParseSnowflake(m[3])
		if err != nil {
			return Emoji{}, fmt.Errorf("%w: %q: %w", ErrInvalidEmoji, s, err)
		}

		return Emoji{ID: id, Name: m[2], Animated: m[1] == "a"}, nil
	}

	if s == "" || !isUnicodeEmoji(s) {
		return Emoji{}, fmt.Errorf("%w: %q", ErrInvalidEmoji, s)
	}

	return Emoji{Name: s}, nil
}

// isUnicodeEmoji rejects plain text: whitespace anywhere, or nothing outside ASCII.
func isUnicodeEmoji(s string) bool {
	ascii := true

	for _, r := range s {
		if unicode.IsSpace(r) {
			return false
		}
		if r > unicode.MaxASCII {
			ascii = false
		}
	}

	return !ascii
}

func (e Emoji) IsCustom() bool {
	return e.ID != 0
}

// String renders the emoji the way it is written in a message.
func (e Emoji) String() string {
	if !e.IsCustom() {
		return e.Name
	}

	if e.Animated {
		return fmt.Sprintf("<a:%s:%s>", e.Name, e.ID)
	}

	return fmt.Sprintf("<:%s:%s>", e.Name, e.ID)
}
