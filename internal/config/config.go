package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
)

// Config holds all run settings, populated from environment variables.
// Paths are relative to the working directory.
type Config struct {
	ShapefilePath   string `env:"SHAPEFILE_PATH" validate:"required"`
	OutputPath      string `env:"OUTPUT_PATH" validate:"required"`
	LogLevel        string `env:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	LogFormat       string `env:"LOG_FORMAT" validate:"oneof=text json"`
	MetricsTextfile string `env:"METRICS_TEXTFILE" validate:"omitempty,endswith=.prom"`
}

// Defaults reproduce the fixed input and output locations.
const (
	DefaultShapefilePath = "data/PH_Adm4/PH_Adm4_BgySubMuns.shp"
	DefaultOutputPath    = "data/barangay-centroids.csv"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report failures by environment variable name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("env")
	})
	return v
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		ShapefilePath:   sharedcfg.EnvOrDefault("SHAPEFILE_PATH", DefaultShapefilePath),
		OutputPath:      sharedcfg.EnvOrDefault("OUTPUT_PATH", DefaultOutputPath),
		LogLevel:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "text")),
		MetricsTextfile: sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return cfg, nil
}

// describe turns validator errors into one line per offending variable.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("invalid %s %q: must be one of %s", fe.Field(), fe.Value(), fe.Param()))
		case "endswith":
			msgs = append(msgs, fmt.Sprintf("invalid %s %q: must end in %s", fe.Field(), fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
