package routing

import "slices"

// ConfigVersion is the mail routing profile a settings object belongs to.
type ConfigVersion string

const (
	ConfigVersionCH  ConfigVersion = "CH"
	ConfigVersionPRV ConfigVersion = "PRV"
)

func (v ConfigVersion) Valid() bool {
	return v == ConfigVersionCH || v == ConfigVersionPRV
}

// GeoRegion is the cloud region an anti-spam policy is tied to.
type GeoRegion string

const (
	GeoRegionNone GeoRegion = "None"
	GeoRegionCH   GeoRegion = "CH"
	GeoRegionDE   GeoRegion = "DE"
)

func (r GeoRegion) Valid() bool {
	switch r {
	case GeoRegionNone, GeoRegionCH, GeoRegionDE:
		return true
	}
	return false
}

// ConfigOption tunes which objects of a bundle get applied.
type ConfigOption string

const (
	ConfigOptionDefault                ConfigOption = "Default"
	ConfigOptionNoAntiSpamWhiteListing ConfigOption = "NoAntiSpamWhiteListing"
)

func (o ConfigOption) Valid() bool {
	return o == ConfigOptionDefault || o == ConfigOptionNoAntiSpamWhiteListing
}

// ConfigBundle names a predefined set of settings. NoTls is declared but
// not active yet.
type ConfigBundle string

const (
	ConfigBundleNone  ConfigBundle = "None"
	ConfigBundleNoTls ConfigBundle = "NoTls"
)

func (b ConfigBundle) Valid() bool {
	return b == ConfigBundleNone || b == ConfigBundleNoTls
}

// PlacementPriority decides where new transport rules go relative to rules
// that already exist.
type PlacementPriority string

const (
	PlacementTop    PlacementPriority = "Top"
	PlacementBottom PlacementPriority = "Bottom"
)

func (p PlacementPriority) Valid() bool {
	return p == PlacementTop || p == PlacementBottom
}

// BundleSettings selects a bundle, its profile and options.
type BundleSettings struct {
	ID      ConfigBundle   `yaml:"id"`
	Version ConfigVersion  `yaml:"version"`
	Options []ConfigOption `yaml:"options"`
}

// Has reports whether option is enabled for the bundle.
func (b BundleSettings) Has(option ConfigOption) bool {
	return slices.Contains(b.Options, option)
}
