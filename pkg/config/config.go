package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config is the service configuration kept in a toml file.
type Config struct {
	ListenAddress string
	// GymsFile holds the gym geometry; relative paths are resolved against
	// the config file's directory, as are DiagramDir, TargetDir and XLSXDir.
	GymsFile        string
	DiagramDir      string
	CredentialsFile string
	CalendarID      string
	// TargetDir is used when Bucket is empty.
	TargetDir    string
	Bucket       string
	BucketPrefix string
	// XLSXDir switches the sheet source to local xlsx exports.
	XLSXDir string
	DPI     float64
}

type datastore struct {
	Filename string
	Store    Config
}

// Write the current config out to a toml file.
func (c *datastore) Save() error {
	b, err := toml.Marshal(c.Store)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Filename, b, 0644)
}

// Load the current config from a toml file.
func (c *datastore) Load() error {
	b, err := os.ReadFile(c.Filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, &c.Store)
}

// Load reads the config file, writing one with defaults if it does not
// exist yet, then applies environment overrides.
func Load(filename string) (*Config, error) {
	c := &datastore{
		Filename: filename,
	}
	if err := c.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		setDefaults(&c.Store)
		if err := c.Save(); err != nil {
			return nil, err
		}
	}
	setDefaults(&c.Store)
	applyEnv(&c.Store)
	resolvePaths(&c.Store, filepath.Dir(filename))
	return &c.Store, nil
}

func setDefaults(c *Config) {
	if c.ListenAddress == "" {
		c.ListenAddress = ":80"
	}
	if c.GymsFile == "" {
		c.GymsFile = "gyms.toml"
	}
	if c.TargetDir == "" {
		c.TargetDir = "static/gyms"
	}
	if c.CalendarID == "" {
		c.CalendarID = "primary"
	}
	if c.DPI <= 0 {
		c.DPI = 400
	}
}

func applyEnv(c *Config) {
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.CredentialsFile = v
	}
	if v := os.Getenv("CALENDAR_ID"); v != "" {
		c.CalendarID = v
	}
	if v := os.Getenv("IMAGE_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("LISTEN_ADDRESS"); v != "" {
		c.ListenAddress = v
	}
	if v := os.Getenv("PLOT_DPI"); v != "" {
		if dpi, err := strconv.ParseFloat(v, 64); err == nil && dpi > 0 {
			c.DPI = dpi
		}
	}
}

func resolvePaths(c *Config, base string) {
	for _, p := range []*string{&c.GymsFile, &c.DiagramDir, &c.TargetDir, &c.XLSXDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
