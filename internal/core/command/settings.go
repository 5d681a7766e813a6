package command

import (
	"fmt"
	"strings"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

type AutodeferMode int

const (
	// AutodeferOff never defers automatically.
	AutodeferOff AutodeferMode = iota
	// AutodeferOn defers with a public placeholder after the grace period.
	AutodeferOn
	// AutodeferEphemeral defers with an ephemeral placeholder after the grace period.
	AutodeferEphemeral
)

func ParseAutodeferMode(s string) (AutodeferMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "false":
		return AutodeferOff, nil
	case "on", "true", "":
		return AutodeferOn, nil
	case "ephemeral":
		return AutodeferEphemeral, nil
	default:
		return AutodeferOff, fmt.Errorf("unknown autodefer mode %q", s)
	}
}

func (m AutodeferMode) String() string {
	switch m {
	case AutodeferOff:
		return "off"
	case AutodeferOn:
		return "on"
	case AutodeferEphemeral:
		return "ephemeral"
	default:
		return "unknown"
	}
}

// Settings are per-scope command settings. A nil field is unset and inherits
// from the enclosing scope.
type Settings struct {
	Autodefer          *AutodeferMode
	DefaultPermissions *domain.Permissions
	NSFW               *bool
	DMEnabled          *bool
}

// ResolvedSettings is the effective configuration of a node after inheritance.
type ResolvedSettings struct {
	Autodefer          AutodeferMode
	DefaultPermissions *domain.Permissions
	NSFW               bool
	DMEnabled          bool
}

func defaultSettings() Settings {
	autodefer := AutodeferOn
	nsfw := false
	dm := true

	return Settings{Autodefer: &autodefer, NSFW: &nsfw, DMEnabled: &dm}
}

// apply returns s with every field that child sets overridden.
func (s Settings) apply(child Settings) Settings {
	if child.Autodefer != nil {
		s.Autodefer = child.Autodefer
	}
	if child.DefaultPermissions != nil {
		s.DefaultPermissions = child.DefaultPermissions
	}
	if child.NSFW != nil {
		s.NSFW = child.NSFW
	}
	if child.DMEnabled != nil {
		s.DMEnabled = child.DMEnabled
	}

	return s
}

func (s Settings) resolve() ResolvedSettings {
	r := ResolvedSettings{Autodefer: AutodeferOn, DMEnabled: true}

	if s.Autodefer != nil {
		r.Autodefer = *s.Autodefer
	}
	if s.DefaultPermissions != nil {
		p := *s.DefaultPermissions
		r.DefaultPermissions = &p
	}
	if s.NSFW != nil {
		r.NSFW = *s.NSFW
	}
	if s.DMEnabled != nil {
		r.DMEnabled = *s.DMEnabled
	}

	return r
}

// onlyAutodefer reports whether nothing but the autodefer mode is set.
func (s Settings) onlyAutodefer() bool {
	return s.DefaultPermissions == nil && s.NSFW == nil && s.DMEnabled == nil
}
