package daybreak

import "fmt"

// Version is a major.minor.patch triple as understood by the driver.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// Largest components the packed encoding can carry.
const (
	MaxMajor = 0x7f
	MaxMinor = 0x3ff
	MaxPatch = 0xfff
)

// Packed returns the Vulkan encoding of the version. Components beyond
// MaxMajor, MaxMinor or MaxPatch are truncated; check Valid first.
func (v Version) Packed() uint32 {
	return (v.Major&MaxMajor)<<22 | (v.Minor&MaxMinor)<<12 | v.Patch&MaxPatch
}

// Valid reports whether every component fits the packed encoding.
func (v Version) Valid() bool {
	return v.Major <= MaxMajor && v.Minor <= MaxMinor && v.Patch <= MaxPatch
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// UnpackVersion decodes a version packed by the driver.
func UnpackVersion(packed uint32) Version {
	return Version{
		Major: packed >> 22 & MaxMajor,
		Minor: packed >> 12 & MaxMinor,
		Patch: packed & MaxPatch,
	}
}

// ApplicationIdentity is the metadata handed to the driver at instance
// creation. It is supplied once and never mutated.
type ApplicationIdentity struct {
	AppName       string
	AppVersion    uint32
	EngineName    string
	EngineVersion uint32
	APIVersion    Version
}

var (
	DefaultAPIVersion = Version{Major: 1, Minor: 0, Patch: 0}
	DefaultEngineName = "daybreak"
)

func (id ApplicationIdentity) String() string {
	return fmt.Sprintf("app=%s v%d engine=%s v%d api=%s",
		id.AppName, id.AppVersion, id.EngineName, id.EngineVersion, id.APIVersion)
}
