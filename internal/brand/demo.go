package brand

import (
	"fmt"

	"github.com/fpang/creator-studio/internal/assets"
	"gopkg.in/yaml.v3"
)

// DemoProfile returns the built-in demo creator for the given platform and
// location. A nil location keeps the demo's default city.
func DemoProfile(platform Platform, loc *Location) (*BrandProfile, error) {
	var p BrandProfile
	if err := yaml.Unmarshal(assets.DemoBrandYAML, &p); err != nil {
		return nil, fmt.Errorf("failed to decode demo profile: %w", err)
	}
	if platform != "" {
		p.PrimaryPlatform = platform
	}
	if loc != nil {
		l := *loc
		if l.Country == "" {
			l.Country = "India"
		}
		p.Location = &l
	}
	return &p, nil
}
