package store

import (
	"errors"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath    = "~/.cardfuse.db"
	defaultCatalog = "cards-data.json"
	defaultLocale  = "EN"
)

// Config locates the store and the catalog.
type Config interface {
	BasePath() string
	CatalogSource() string
	Locale() string
}

// LoadConfig reads .cardfuse.yaml from $CARDFUSE_CONFIG_PATH or the working
// directory, with CARDFUSE_* environment overrides. A missing config file is
// not an error.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("catalog", defaultCatalog)
	v.SetDefault("locale", defaultLocale)
	v.SetConfigName(".cardfuse") // .yaml is implicit
	v.SetEnvPrefix("CARDFUSE")
	v.AutomaticEnv()

	if override := os.Getenv("CARDFUSE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &FileConfig{
		Path:    v.GetString("path"),
		Catalog: v.GetString("catalog"),
		Lang:    v.GetString("locale"),
	}, nil
}

// FileConfig is the resolved configuration. Commands override fields from
// flags before opening the store.
type FileConfig struct {
	Path    string `json:"path"`
	Catalog string `json:"catalog"`
	Lang    string `json:"locale"`
}

// BasePath returns the store directory with a leading ~ expanded.
func (f *FileConfig) BasePath() string {
	p, err := homedir.Expand(f.Path)
	if err != nil {
		return f.Path
	}
	return p
}

func (f *FileConfig) CatalogSource() string {
	return f.Catalog
}

func (f *FileConfig) Locale() string {
	return f.Lang
}
