package driver

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the small slice of settings this compiler externalizes:
// whether `--optimize` is on by default, and where compiled output
// lands when `-o` is not given. CLI flags always win over these; these
// values win over the built-in defaults below.
type Config struct {
	Build BuildConfig `mapstructure:"build"`
}

// BuildConfig groups the build-related settings.
type BuildConfig struct {
	OptimizeByDefault bool   `mapstructure:"optimize_by_default"`
	OutputDir         string `mapstructure:"output_dir"`
}

// LoadConfig loads carbonc.yaml/carbonc.yml from the working directory,
// layered with CARBONC_* environment variables, falling back to
// defaults when no config file is present.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("build.optimize_by_default", false)
	v.SetDefault("build.output_dir", "")

	v.SetConfigName("carbonc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CARBONC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read carbonc config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal carbonc config: %w", err)
	}
	return &cfg, nil
}
