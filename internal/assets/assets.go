// Package assets provides embedded static assets for the application.
package assets

import (
	_ "embed"
)

// DemoBrandYAML is the built-in demo creator profile used by --demo and by
// sessions created without an explicit profile.
//
//go:embed demo-brand.yaml
var DemoBrandYAML []byte
