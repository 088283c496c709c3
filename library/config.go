package library

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the runtime settings: where the three document stores live and
// how the operational log behaves.
type Config struct {
	MembersFile string `mapstructure:"members_file" validate:"required"`
	BooksFile   string `mapstructure:"books_file" validate:"required"`
	LoansFile   string `mapstructure:"loans_file" validate:"required"`
	LogFile     string `mapstructure:"log_file" validate:"required"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// LoadConfig reads config.yaml from the working directory (or the explicit
// path when given), applies BIBLIOTECA_* environment overrides, and falls
// back to defaults for anything unset.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("members_file", "data/alumnos.json")
	v.SetDefault("books_file", "data/libros.json")
	v.SetDefault("loans_file", "data/prestamos.json")
	v.SetDefault("log_file", "biblioteca.log")
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("leer configuración %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("leer configuración: %w", err)
		}
	}

	v.SetEnvPrefix("BIBLIOTECA")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("interpretar configuración: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuración inválida: %w", err)
	}
	return &cfg, nil
}
