package render

import (
	"fmt"

	"github.com/Faultbox/daynight/pkg/projection"
	"github.com/Faultbox/daynight/pkg/shading"
)

// Mode is a map product: a projection paired with a shading policy.
type Mode string

const (
	// ModeGlobal is a lit world map composited from day and night imagery.
	ModeGlobal Mode = "global"
	// ModeLights is a shadow overlay plus a city-lights mask.
	ModeLights Mode = "lights"
	// ModeTimezone is a shadow overlay for a Miller timezone map.
	ModeTimezone Mode = "timezone"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeGlobal, ModeLights, ModeTimezone:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want global, lights or timezone)", s)
}

// Policy returns the shading policy of the mode.
func (m Mode) Policy() shading.Policy {
	switch m {
	case ModeLights:
		return shading.PolicyOverlay
	case ModeTimezone:
		return shading.PolicyTimezone
	default:
		return shading.PolicyComposite
	}
}

// Projection returns the default projection of the mode.
func (m Mode) Projection() projection.Config {
	if m == ModeTimezone {
		return projection.TimezoneConfig()
	}
	return projection.DefaultConfig()
}
