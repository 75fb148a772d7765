package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/hdt3213/tcplite/socket"
)

// DefaultConfPath is read when no config file is given explicitly.
const DefaultConfPath = "tcplite.yaml"

// ServerProperties defines global config properties
type ServerProperties struct {
	Bind          string `mapstructure:"bind" validate:"required"`
	Port          uint16 `mapstructure:"port"`
	Backlog       int    `mapstructure:"backlog" validate:"min=0"`
	BufferSize    int    `mapstructure:"buffer-size" validate:"min=2"`
	StrictAddress bool   `mapstructure:"strict-address"`
}

// Properties holds global config properties
var Properties = defaultProperties()

var validate = validator.New()

func defaultProperties() *ServerProperties {
	return &ServerProperties{
		Bind:          "0.0.0.0",
		Port:          7379,
		Backlog:       5,
		BufferSize:    1024,
		StrictAddress: true,
	}
}

// Setup reads the optional config file and stores the result in Properties.
// File values sit below whatever the CLI overrides afterward; Validate must
// run after all overrides are applied.
func Setup(configFile string) error {
	v := viper.New()
	defaults := defaultProperties()
	v.SetDefault("bind", defaults.Bind)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("backlog", defaults.Backlog)
	v.SetDefault("buffer-size", defaults.BufferSize)
	v.SetDefault("strict-address", defaults.StrictAddress)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	props := &ServerProperties{}
	if err := v.Unmarshal(props); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	Properties = props
	return nil
}

// Validate checks bounds and resolves the bind address.
//
// An unparseable bind address is rejected with *socket.InvalidAddressError
// when StrictAddress is set. With StrictAddress off it falls back to the
// IPv4 wildcard, preserving the historical inet_pton behavior where a bad
// address string silently became 0.0.0.0.
func Validate(p *ServerProperties) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := validate.Var(p.Bind, "ip4_addr"); err != nil {
		if p.StrictAddress {
			return &socket.InvalidAddressError{Addr: p.Bind}
		}
		p.Bind = "0.0.0.0"
	}
	return nil
}
