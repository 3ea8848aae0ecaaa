// Package config loads the engine configuration from YAML.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/carsonclarke570/daybreak"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a configuration file.
const DefaultPath = "config/default.yaml"

// EngineConfig is the root of the configuration document.
type EngineConfig struct {
	Version int          `yaml:"version" toml:"version"`
	Window  WindowConfig `yaml:"window" toml:"window"`
	Vulkan  VulkanConfig `yaml:"vulkan" toml:"vulkan"`
}

type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
}

type VulkanConfig struct {
	Instance       InstanceConfig       `yaml:"instance" toml:"instance"`
	PhysicalDevice PhysicalDeviceConfig `yaml:"physical_device" toml:"physical_device"`
}

type InstanceConfig struct {
	AppName       string `yaml:"app_name" toml:"app_name"`
	AppVersion    uint32 `yaml:"app_version" toml:"app_version"`
	EngineName    string `yaml:"engine_name" toml:"engine_name"`
	EngineVersion uint32 `yaml:"engine_version" toml:"engine_version"`
	// APIVersion is major, minor, patch.
	APIVersion []uint32 `yaml:"api_version" toml:"api_version"`
}

type PhysicalDeviceConfig struct {
	DesiredQueueFlags     QueueFlagsConfig     `yaml:"desired_queue_flags" toml:"desired_queue_flags"`
	DesiredDeviceFeatures DeviceFeaturesConfig `yaml:"desired_device_features" toml:"desired_device_features"`
}

type QueueFlagsConfig struct {
	Graphics bool `yaml:"graphics" toml:"graphics"`
	Compute  bool `yaml:"compute" toml:"compute"`
	Transfer bool `yaml:"transfer" toml:"transfer"`
	Sparse   bool `yaml:"sparse" toml:"sparse"`
}

type DeviceFeaturesConfig struct {
	GeometryShader     bool `yaml:"geometry_shader" toml:"geometry_shader"`
	TessellationShader bool `yaml:"tessellation_shader" toml:"tessellation_shader"`
	SamplerAnisotropy  bool `yaml:"sampler_anisotropy" toml:"sampler_anisotropy"`
	MultiDrawIndirect  bool `yaml:"multi_draw_indirect" toml:"multi_draw_indirect"`
	FillModeNonSolid   bool `yaml:"fill_mode_non_solid" toml:"fill_mode_non_solid"`
	WideLines          bool `yaml:"wide_lines" toml:"wide_lines"`
}

// Format is the encoding of a configuration document.
type Format int

const (
	YAML Format = iota
	TOML
)

// FormatOf picks the format from the file extension. Anything that is
// not .toml is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// Load reads and validates the configuration file at path. A leading ~
// expands to the user's home directory.
func Load(path string) (*EngineConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config path %q", path)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %q", expanded)
	}
	cfg, err := DecodeFormat(bytes.NewReader(data), FormatOf(expanded))
	if err != nil {
		return nil, errors.Wrapf(err, "config %q", expanded)
	}
	return cfg, nil
}

// Decode parses a YAML configuration document. Unknown keys are rejected.
func Decode(r io.Reader) (*EngineConfig, error) {
	return DecodeFormat(r, YAML)
}

// DecodeFormat parses a configuration document in the given format and
// validates it. Unknown keys are rejected in both formats.
func DecodeFormat(r io.Reader, format Format) (*EngineConfig, error) {
	cfg := &EngineConfig{}
	var err error
	switch format {
	case TOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if err == io.EOF {
			return nil, errors.New("empty configuration")
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the bootstrap depends on.
func (c *EngineConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height)
	}
	inst := c.Vulkan.Instance
	if inst.AppName == "" {
		return errors.New("vulkan.instance: app_name is required")
	}
	if len(inst.APIVersion) != 3 {
		return errors.Errorf("vulkan.instance: api_version needs 3 components, got %d", len(inst.APIVersion))
	}
	if inst.APIVersion[0] == 0 {
		return errors.Errorf("vulkan.instance: unsupported api_version %v", inst.APIVersion)
	}
	v := daybreak.Version{Major: inst.APIVersion[0], Minor: inst.APIVersion[1], Patch: inst.APIVersion[2]}
	if !v.Valid() {
		return errors.Errorf("vulkan.instance: api_version %v out of range (max %d.%d.%d)",
			inst.APIVersion, daybreak.MaxMajor, daybreak.MaxMinor, daybreak.MaxPatch)
	}
	if c.Requirement().Queues == 0 {
		return errors.New("vulkan.physical_device: no queue flags desired")
	}
	return nil
}

// WindowConfig converts the window section.
func (c *EngineConfig) WindowConfig() daybreak.WindowConfig {
	return daybreak.WindowConfig{
		Title:      c.Window.Title,
		Width:      c.Window.Width,
		Height:     c.Window.Height,
		Fullscreen: c.Window.Fullscreen,
	}
}

// Identity converts the instance section. An empty engine name falls
// back to daybreak.DefaultEngineName.
func (c *EngineConfig) Identity() daybreak.ApplicationIdentity {
	inst := c.Vulkan.Instance
	id := daybreak.ApplicationIdentity{
		AppName:       inst.AppName,
		AppVersion:    inst.AppVersion,
		EngineName:    inst.EngineName,
		EngineVersion: inst.EngineVersion,
		APIVersion:    daybreak.DefaultAPIVersion,
	}
	if id.EngineName == "" {
		id.EngineName = daybreak.DefaultEngineName
	}
	if len(inst.APIVersion) == 3 {
		id.APIVersion = daybreak.Version{
			Major: inst.APIVersion[0],
			Minor: inst.APIVersion[1],
			Patch: inst.APIVersion[2],
		}
	}
	return id
}

// Requirement converts the physical_device section.
func (c *EngineConfig) Requirement() daybreak.CapabilityRequirement {
	q := c.Vulkan.PhysicalDevice.DesiredQueueFlags
	f := c.Vulkan.PhysicalDevice.DesiredDeviceFeatures

	var flags daybreak.QueueFlags
	if q.Graphics {
		flags |= daybreak.QueueGraphics
	}
	if q.Compute {
		flags |= daybreak.QueueCompute
	}
	if q.Transfer {
		flags |= daybreak.QueueTransfer
	}
	if q.Sparse {
		flags |= daybreak.QueueSparseBinding
	}
	return daybreak.CapabilityRequirement{
		Queues: flags,
		Features: daybreak.DeviceFeatures{
			GeometryShader:     f.GeometryShader,
			TessellationShader: f.TessellationShader,
			SamplerAnisotropy:  f.SamplerAnisotropy,
			MultiDrawIndirect:  f.MultiDrawIndirect,
			FillModeNonSolid:   f.FillModeNonSolid,
			WideLines:          f.WideLines,
		},
	}
}
