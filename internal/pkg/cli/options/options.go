// Package options resolves CLI configuration from flags and environment.
package options

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

const envPrefix = "MAPSTUDIO"

type Options struct {
	APIURL  string
	Timeout time.Duration
	Verbose bool
}

func New() *Options {
	return &Options{
		APIURL:  "http://localhost:8080",
		Timeout: 30 * time.Second,
	}
}

// Flags registers the persistent flags backing the options.
func Flags(flags *pflag.FlagSet) {
	flags.String("api-url", "http://localhost:8080", "base URL of the mapping service")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.BoolP("verbose", "v", false, "print details")
}

// Load resolves options from parsed flags and MAPSTUDIO_* environment
// variables, flags win over the environment.
func Load(flags *pflag.FlagSet) (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, errors.PrefixError(err, "cannot bind flags")
	}

	out := New()
	if value := v.GetString("api-url"); value != "" {
		out.APIURL = value
	}
	if value := v.GetDuration("timeout"); value > 0 {
		out.Timeout = value
	}
	out.Verbose = v.GetBool("verbose")
	return out, nil
}
