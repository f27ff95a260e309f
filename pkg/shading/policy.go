package shading

import "fmt"

// Policy selects how altitude is encoded into output buffers.
type Policy string

const (
	// PolicyComposite writes one lit RGB map from day and night imagery.
	PolicyComposite Policy = "composite"
	// PolicyOverlay writes an RGBA shadow layer and an RGBA lights mask.
	PolicyOverlay Policy = "overlay"
	// PolicyTimezone writes a single black RGBA shadow layer.
	PolicyTimezone Policy = "timezone"
)

// Layer names.
const (
	LayerComposite = "composite"
	LayerShadow    = "shadow"
	LayerLights    = "lights"
)

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyComposite, PolicyOverlay, PolicyTimezone:
		return p, nil
	}
	return "", fmt.Errorf("unknown shading policy %q", s)
}

// Channels returns the bytes per pixel of every layer the policy writes.
func (p Policy) Channels() int {
	if p == PolicyComposite {
		return 3
	}
	return 4
}

// Layers returns the layer names the policy writes, in output order.
func (p Policy) Layers() []string {
	switch p {
	case PolicyComposite:
		return []string{LayerComposite}
	case PolicyOverlay:
		return []string{LayerShadow, LayerLights}
	case PolicyTimezone:
		return []string{LayerShadow}
	}
	return nil
}

// NeedsTextures reports whether the policy reads day and night imagery.
func (p Policy) NeedsTextures() bool {
	return p == PolicyComposite
}
