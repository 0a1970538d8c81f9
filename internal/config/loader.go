package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"suncron/internal/geo"

	"github.com/joho/godotenv"
	"github.com/naoina/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the Loader.
const (
	EnvLatitude  = "SUNCRON_LATITUDE"
	EnvLongitude = "SUNCRON_LONGITUDE"
	EnvConfig    = "SUNCRON_CONFIG"
	EnvLogLevel  = "SUNCRON_LOG_LEVEL"
)

// configName is the base name of the config file looked up in the config directory
const configName = "suncron"

// configExtensions are tried in order
var configExtensions = []string{".toml", ".yaml", ".yml"}

// Defaults holds the values used when the command line does not set them
type Defaults struct {
	Coordinates geo.Coordinates
}

// BuiltinDefaults returns the defaults used when neither a config file nor the
// environment sets a location: the Royal Observatory, Greenwich.
func BuiltinDefaults() Defaults {
	return Defaults{Coordinates: geo.Coordinates{Latitude: 51.4769, Longitude: -0.0005}}
}

// File represents the suncron.toml / suncron.yaml structure. Values accept
// the same forms as the command line, e.g. "51.4769N".
type File struct {
	Latitude  string `toml:"latitude" yaml:"latitude"`
	Longitude string `toml:"longitude" yaml:"longitude"`
}

// Loader resolves Defaults from the config file and the environment
type Loader struct {
	configDir string
	logger    *zap.Logger
}

// NewLoader creates a new configuration loader. configDir is searched for
// suncron.toml, suncron.yaml and suncron.yml.
func NewLoader(configDir string, logger *zap.Logger) *Loader {
	return &Loader{
		configDir: configDir,
		logger:    logger.Named("config"),
	}
}

// DefaultConfigDir returns the user's configuration directory
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir
}

// LoadEnvFile loads variables from a .env file into the environment without
// overriding variables that are already set. A missing file is not an error.
func (l *Loader) LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("No env file found", zap.String("path", path))
			return nil
		}
		return &Error{Source: path, Err: fmt.Errorf("failed to load env file: %w", err)}
	}
	l.logger.Debug("Loaded env file", zap.String("path", path))
	return nil
}

// Load returns the built-in defaults overridden first by the config file and
// then by the environment
func (l *Loader) Load() (Defaults, error) {
	defaults := BuiltinDefaults()

	path, err := l.configPath()
	if err != nil {
		return Defaults{}, err
	}
	if path != "" {
		coords, ok, err := l.LoadFile(path)
		if err != nil {
			return Defaults{}, err
		}
		if ok {
			defaults.Coordinates = coords
		}
	}

	coords, ok, err := l.loadEnv()
	if err != nil {
		return Defaults{}, err
	}
	if ok {
		defaults.Coordinates = coords
	}

	l.logger.Debug("Configuration loaded", zap.String("coordinates", defaults.Coordinates.String()))
	return defaults, nil
}

// configPath returns the config file to read, or "" when there is none
func (l *Loader) configPath() (string, error) {
	if path, ok := os.LookupEnv(EnvConfig); ok && path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", &Error{Source: EnvConfig, Err: fmt.Errorf("failed to read config file: %w", err)}
		}
		return path, nil
	}
	if l.configDir == "" {
		return "", nil
	}
	for _, ext := range configExtensions {
		path := filepath.Join(l.configDir, configName+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadFile reads the coordinates from a TOML or YAML config file. It reports
// false when the file sets neither coordinate.
func (l *Loader) LoadFile(path string) (geo.Coordinates, bool, error) {
	l.logger.Debug("Loading config file", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return geo.Coordinates{}, false, &Error{Source: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	var file File
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = fmt.Errorf("unsupported config file extension '%s'", ext)
	}
	if err != nil {
		return geo.Coordinates{}, false, &Error{Source: path, Err: fmt.Errorf("failed to parse config file: %w", err)}
	}

	coords, ok, err := coordinatesFrom(file.Latitude, file.Longitude)
	if err != nil {
		return geo.Coordinates{}, false, &Error{Source: path, Err: err}
	}
	if ok {
		l.logger.Info("Config file loaded", zap.String("path", path), zap.String("coordinates", coords.String()))
	}
	return coords, ok, nil
}

func (l *Loader) loadEnv() (geo.Coordinates, bool, error) {
	lat := os.Getenv(EnvLatitude)
	lon := os.Getenv(EnvLongitude)

	coords, ok, err := coordinatesFrom(lat, lon)
	if err != nil {
		return geo.Coordinates{}, false, &Error{Source: EnvLatitude + "/" + EnvLongitude, Err: err}
	}
	return coords, ok, nil
}

// coordinatesFrom parses a latitude and longitude that must be set together
func coordinatesFrom(lat, lon string) (geo.Coordinates, bool, error) {
	if lat == "" && lon == "" {
		return geo.Coordinates{}, false, nil
	}
	if lat == "" || lon == "" {
		return geo.Coordinates{}, false, errors.New("latitude and longitude must be set together")
	}
	coords, err := geo.ParseCoordinates(lat, lon)
	if err != nil {
		return geo.Coordinates{}, false, err
	}
	return coords, true, nil
}
