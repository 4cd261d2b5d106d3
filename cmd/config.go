package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the default values of the command flags.
type Config struct {
	OnError      string // continue or abort.
	RequireOwner bool
	Currency     string // display currency of the summary.
	Verbose      bool
}

// LoadConfig reads the configuration from file, or from the default locations if file is empty.
//
// A missing file at a default location is not an error. Environment variables PAY_ON_ERROR,
// PAY_REQUIRE_OWNER, PAY_CURRENCY and PAY_VERBOSE override the file.
func LoadConfig(file string) (Config, error) {
	v := viper.New()
	v.SetDefault("on_error", "continue")
	v.SetDefault("require_owner", false)
	v.SetDefault("currency", "")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("pay")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("pay")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/pay")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("cannot read configuration: %w", err)
		}
	}

	return Config{
		OnError:      v.GetString("on_error"),
		RequireOwner: v.GetBool("require_owner"),
		Currency:     v.GetString("currency"),
		Verbose:      v.GetBool("verbose"),
	}, nil
}
