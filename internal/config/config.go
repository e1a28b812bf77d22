package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// Config holds every user-adjustable knob of the recorder. It is loaded once
// at startup, validated, and passed explicitly to the components that need
// it; nothing reads configuration ambiently after that.
type Config struct {
	OutFile  string `json:"outfile" yaml:"outfile"`
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	LogLevel string `json:"log_level" yaml:"log_level"`
	Marker   struct {
		Path    string  `json:"path" yaml:"path"`
		Scale   float64 `json:"scale" yaml:"scale"`
		AnchorX int     `json:"anchor_x" yaml:"anchor_x"`
		AnchorY int     `json:"anchor_y" yaml:"anchor_y"`
	} `json:"marker" yaml:"marker"`
	Image struct {
		Format  string `json:"format" yaml:"format"`
		Quality int    `json:"quality" yaml:"quality"`
	} `json:"image" yaml:"image"`
	Capture struct {
		Buttons            []string `json:"buttons" yaml:"buttons"`
		Grabber            string   `json:"grabber" yaml:"grabber"`
		GrabCommand        string   `json:"grab_command" yaml:"grab_command"`
		GrabTimeoutSeconds int      `json:"grab_timeout_seconds" yaml:"grab_timeout_seconds"`
		Source             string   `json:"source" yaml:"source"`
		SourceCommand      string   `json:"source_command" yaml:"source_command"`
	} `json:"capture" yaml:"capture"`
	Output struct {
		Title   string   `json:"title" yaml:"title"`
		Formats []string `json:"formats" yaml:"formats"`
	} `json:"output" yaml:"output"`
	Autosave struct {
		Enabled  bool   `json:"enabled" yaml:"enabled"`
		Schedule string `json:"schedule" yaml:"schedule"`
	} `json:"autosave" yaml:"autosave"`
}

// defaultGrabCommand picks a screenshot command for the host platform.
// The {path} placeholder is replaced with a temp file the grabber reads back.
func defaultGrabCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "screencapture -x {path}"
	case "linux":
		return "scrot --overwrite {path}"
	default:
		return ""
	}
}

// Load reads configuration for the recorder. Defaults are applied first,
// then the file at path (JSON or YAML by extension) if it exists, then
// environment overrides. A missing file at the default location is written
// out with defaults so users have something to edit.
func Load(path string) (*Config, error) {
	cfg := &Config{
		OutFile:  filepath.Join("steps", "Steps_Recorded.html"),
		DataDir:  filepath.Join(os.Getenv("HOME"), ".xsr"),
		LogLevel: "info",
	}
	cfg.Marker.Path = filepath.Join("resources", "Cursor.png")
	cfg.Marker.Scale = 1.0
	cfg.Image.Format = "jpeg"
	cfg.Image.Quality = 80
	cfg.Capture.Buttons = []string{"left", "right", "middle"}
	cfg.Capture.Grabber = "exec"
	cfg.Capture.GrabCommand = defaultGrabCommand()
	cfg.Capture.GrabTimeoutSeconds = 5
	cfg.Capture.Source = "exec"
	cfg.Output.Formats = []string{"html"}
	cfg.Autosave.Schedule = "@every 30s"

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := unmarshalByExt(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if outfile := os.Getenv("XSR_OUTFILE"); outfile != "" {
		cfg.OutFile = outfile
	}
	if marker := os.Getenv("XSR_MARKER"); marker != "" {
		cfg.Marker.Path = marker
	}

	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
// The write goes through a temp file and rename so a crash never leaves a
// half-written config behind.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := marshalByExt(path, cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func unmarshalByExt(path string, data []byte, v any) error {
	if isYAMLPath(path) {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

func marshalByExt(path string, v any) ([]byte, error) {
	if isYAMLPath(path) {
		return yaml.Marshal(v)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Title returns the report title: the configured one, or the output file
// stem when none is set.
func (c *Config) Title() string {
	if c.Output.Title != "" {
		return c.Output.Title
	}
	base := filepath.Base(c.OutFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NormalizeFormat canonicalises an image format string ("jpg" and "jpeg"
// are the same format). The empty string is returned for unknown formats.
func NormalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png":
		return "png"
	case "jpg", "jpeg":
		return "jpeg"
	default:
		return ""
	}
}

// Validate checks the configuration once at startup. Any error here is
// fatal: the recorder refuses to start rather than discover a bad knob
// mid-session.
func (c *Config) Validate() error {
	if c.OutFile == "" {
		return fmt.Errorf("outfile must not be empty")
	}
	if c.Marker.Path == "" {
		return fmt.Errorf("marker.path must not be empty")
	}
	if c.Marker.Scale <= 0 {
		return fmt.Errorf("marker.scale must be positive, got %g", c.Marker.Scale)
	}
	if c.Marker.AnchorX < 0 || c.Marker.AnchorY < 0 {
		return fmt.Errorf("marker anchor must not be negative, got (%d, %d)", c.Marker.AnchorX, c.Marker.AnchorY)
	}
	if NormalizeFormat(c.Image.Format) == "" {
		return fmt.Errorf("image.format must be png or jpeg, got %q", c.Image.Format)
	}
	if c.Image.Quality < 1 || c.Image.Quality > 100 {
		return fmt.Errorf("image.quality must be between 1 and 100, got %d", c.Image.Quality)
	}
	if len(c.Capture.Buttons) == 0 {
		return fmt.Errorf("capture.buttons must list at least one button")
	}
	for _, b := range c.Capture.Buttons {
		if _, err := types.ParseButton(b); err != nil {
			return fmt.Errorf("capture.buttons: %w", err)
		}
	}
	switch c.Capture.Grabber {
	case "exec":
		if c.Capture.GrabCommand == "" {
			return fmt.Errorf("capture.grab_command must be set for the exec grabber (no default exists for %s)", runtime.GOOS)
		}
		if !strings.Contains(c.Capture.GrabCommand, "{path}") {
			return fmt.Errorf("capture.grab_command must contain the {path} placeholder")
		}
	case "synthetic":
	default:
		return fmt.Errorf("capture.grabber must be exec or synthetic, got %q", c.Capture.Grabber)
	}
	if c.Capture.GrabTimeoutSeconds <= 0 {
		return fmt.Errorf("capture.grab_timeout_seconds must be positive, got %d", c.Capture.GrabTimeoutSeconds)
	}
	switch c.Capture.Source {
	case "exec":
		if c.Capture.SourceCommand == "" {
			return fmt.Errorf("capture.source_command must be set for the exec source (use the script source for a demo run)")
		}
	case "script":
	default:
		return fmt.Errorf("capture.source must be exec or script, got %q", c.Capture.Source)
	}
	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("output.formats must list at least one format")
	}
	for _, f := range c.Output.Formats {
		switch f {
		case "html", "markdown":
		default:
			return fmt.Errorf("output.formats: unknown format %q (valid: html, markdown)", f)
		}
	}
	if c.Autosave.Enabled && c.Autosave.Schedule == "" {
		return fmt.Errorf("autosave.schedule must be set when autosave is enabled")
	}
	return nil
}

// Buttons returns the configured trigger buttons as a set.
func (c *Config) Buttons() map[types.Button]bool {
	set := make(map[types.Button]bool, len(c.Capture.Buttons))
	for _, b := range c.Capture.Buttons {
		if button, err := types.ParseButton(b); err == nil {
			set[button] = true
		}
	}
	return set
}
