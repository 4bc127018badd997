// Package config provides configuration loading and management for histoalign.
// It handles loading view layouts and interaction settings from YAML files and
// provides default values.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"histoalign/internal/models"
	"histoalign/pkg/interaction"
)

// ViewConfig is one view of a layout as written in YAML
type ViewConfig struct {
	// UID identifies the view; it must be unique across all layouts
	UID string `yaml:"uid"`

	// Type is a view type name such as "Image_Axial" or "Stack_StackSide1"
	Type string `yaml:"type"`
}

// LayoutConfig is a named group of views shown together
type LayoutConfig struct {
	Name  string       `yaml:"name"`
	Views []ViewConfig `yaml:"views"`
}

// Config represents the application configuration loaded from YAML
type Config struct {
	// Layouts lists the view layouts to register
	Layouts []LayoutConfig `yaml:"layouts"`

	// Interaction parameters
	Interaction struct {
		// Convention is "radiological" or "neurological"
		Convention string `yaml:"convention"`

		// RotateDegreesPerNDC is the rotation applied per unit of pointer travel
		RotateDegreesPerNDC float64 `yaml:"rotateDegreesPerNDC"`

		// ZoomPerNDC is the log zoom change per unit of vertical pointer travel
		ZoomPerNDC float64 `yaml:"zoomPerNDC"`

		// ScrollZoomFactor is the zoom factor applied per scroll notch
		ScrollZoomFactor float64 `yaml:"scrollZoomFactor"`

		// ScrollStep is the distance in mm the crosshairs move per scroll notch
		ScrollStep float64 `yaml:"scrollStep"`

		// MinZoom and MaxZoom bound camera zoom
		MinZoom float64 `yaml:"minZoom"`
		MaxZoom float64 `yaml:"maxZoom"`

		// OrthoHalfHeight is the half height in mm shown by 2D views at zoom 1
		OrthoHalfHeight float64 `yaml:"orthoHalfHeight"`

		// FieldOfViewDegrees is the vertical angle of 3D views
		FieldOfViewDegrees float64 `yaml:"fieldOfViewDegrees"`

		// Window/level defaults and drag sensitivities
		InitialWindow float64 `yaml:"initialWindow"`
		InitialLevel  float64 `yaml:"initialLevel"`
		MinWindow     float64 `yaml:"minWindow"`
		WindowPerNDC  float64 `yaml:"windowPerNDC"`
		LevelPerNDC   float64 `yaml:"levelPerNDC"`
	} `yaml:"interaction"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`

		// PreviewDir is the directory to save per-view reslice previews
		PreviewDir string `yaml:"previewDir"`

		// PreviewSize is the width and height in pixels of each preview
		PreviewSize int `yaml:"previewSize"`

		// PreviewFormat is the preview file type: jpg, png or tiff
		PreviewFormat string `yaml:"previewFormat"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Layouts = []LayoutConfig{
		{Name: "main", Views: []ViewConfig{
			{UID: "axial", Type: models.ImageAxial.String()},
			{UID: "coronal", Type: models.ImageCoronal.String()},
			{UID: "sagittal", Type: models.ImageSagittal.String()},
			{UID: "3d", Type: models.Image3D.String()},
		}},
		{Name: "stack", Views: []ViewConfig{
			{UID: "stack_slide", Type: models.StackActiveSlide.String()},
			{UID: "stack_side1", Type: models.StackSide1.String()},
			{UID: "stack_side2", Type: models.StackSide2.String()},
			{UID: "stack_3d", Type: models.Stack3D.String()},
		}},
		{Name: "reg", Views: []ViewConfig{
			{UID: "reg_slide", Type: models.RegActiveSlide.String()},
			{UID: "reg_ref", Type: models.RegRefImageAtSlide.String()},
		}},
		{Name: "big3d", Views: []ViewConfig{
			{UID: "big3d", Type: models.ImageBig3D.String()},
		}},
	}

	// Set default interaction parameters
	s := interaction.DefaultSettings()
	cfg.Interaction.Convention = interaction.Radiological.String()
	cfg.Interaction.RotateDegreesPerNDC = s.RotateRadiansPerNDC * 180 / math.Pi
	cfg.Interaction.ZoomPerNDC = s.ZoomPerNDC
	cfg.Interaction.ScrollZoomFactor = s.ScrollZoomFactor
	cfg.Interaction.ScrollStep = s.ScrollStep
	cfg.Interaction.MinZoom = s.MinZoom
	cfg.Interaction.MaxZoom = s.MaxZoom
	cfg.Interaction.OrthoHalfHeight = s.OrthoHalfHeight
	cfg.Interaction.FieldOfViewDegrees = s.FieldOfView * 180 / math.Pi
	cfg.Interaction.InitialWindow = s.InitialWindow
	cfg.Interaction.InitialLevel = s.InitialLevel
	cfg.Interaction.MinWindow = s.MinWindow
	cfg.Interaction.WindowPerNDC = s.WindowPerNDC
	cfg.Interaction.LevelPerNDC = s.LevelPerNDC

	// Set default output parameters
	cfg.Output.Verbose = false
	cfg.Output.PreviewDir = ""
	cfg.Output.PreviewSize = 256
	cfg.Output.PreviewFormat = "jpg"

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Layouts given in the file replace the defaults rather than extend them
	var probe struct {
		Layouts []LayoutConfig `yaml:"layouts"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if probe.Layouts != nil {
		cfg.Layouts = nil
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Views flattens the layouts into the views to register, in file order.
func (c *Config) Views() ([]models.View, error) {
	layouts, err := c.ParsedLayouts()
	if err != nil {
		return nil, err
	}

	var views []models.View
	for _, layout := range layouts {
		views = append(views, layout.Views...)
	}
	return views, nil
}

// ParsedLayouts validates the layouts and resolves their view types. View
// UIDs must be unique across all layouts.
func (c *Config) ParsedLayouts() ([]models.Layout, error) {
	layouts := make([]models.Layout, 0, len(c.Layouts))
	seen := make(map[models.ViewUID]string)

	for _, layout := range c.Layouts {
		parsed := models.Layout{Name: layout.Name}
		for _, vc := range layout.Views {
			uid := models.ViewUID(vc.UID)
			if uid == "" {
				return nil, fmt.Errorf("layout %s: view with empty uid", layout.Name)
			}
			if other, ok := seen[uid]; ok {
				return nil, fmt.Errorf("layout %s: view %s already defined in layout %s", layout.Name, uid, other)
			}
			t, err := models.ParseViewType(vc.Type)
			if err != nil {
				return nil, fmt.Errorf("layout %s: view %s: %w", layout.Name, uid, err)
			}
			seen[uid] = layout.Name
			parsed.Views = append(parsed.Views, models.View{UID: uid, Type: t})
		}
		layouts = append(layouts, parsed)
	}

	return layouts, nil
}

// Convention parses the configured start frame convention.
func (c *Config) Convention() (interaction.Convention, error) {
	return interaction.ParseConvention(c.Interaction.Convention)
}

// InteractionSettings converts the interaction section into handler settings.
func (c *Config) InteractionSettings() interaction.Settings {
	in := c.Interaction
	return interaction.Settings{
		RotateRadiansPerNDC: in.RotateDegreesPerNDC * math.Pi / 180,
		ZoomPerNDC:          in.ZoomPerNDC,
		ScrollZoomFactor:    in.ScrollZoomFactor,
		ScrollStep:          in.ScrollStep,
		WindowPerNDC:        in.WindowPerNDC,
		LevelPerNDC:         in.LevelPerNDC,
		MinWindow:           in.MinWindow,
		InitialWindow:       in.InitialWindow,
		InitialLevel:        in.InitialLevel,
		MinZoom:             in.MinZoom,
		MaxZoom:             in.MaxZoom,
		OrthoHalfHeight:     in.OrthoHalfHeight,
		FieldOfView:         in.FieldOfViewDegrees * math.Pi / 180,
	}
}
