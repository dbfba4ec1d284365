package config

import "fmt"

// Prompter asks the user for values missing from the file.
type Prompter interface {
	// Ask reads a value with echo on.
	Ask(label string) (string, error)
	// AskSecret reads a value with echo off.
	AskSecret(label string) (string, error)
}

// Prompt labels.
const (
	InstanceURLLabel    = "echoCTF.RED instance URL"
	IdentityCookieLabel = "Identity-RED Cookie: "
)

// Complete fills empty fields of cfg through p. The cookie is always read
// with echo disabled.
func Complete(cfg *Config, p Prompter) error {
	if cfg.InstanceURL == "" {
		v, err := p.Ask(InstanceURLLabel)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMissingRequired, KeyInstanceURL, err)
		}
		cfg.InstanceURL = v
	}
	if cfg.IdentityCookie == "" {
		v, err := p.AskSecret(IdentityCookieLabel)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMissingRequired, KeyIdentityCookie, err)
		}
		cfg.IdentityCookie = v
	}
	if cfg.InstanceURL == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequired, KeyInstanceURL)
	}
	if cfg.IdentityCookie == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequired, KeyIdentityCookie)
	}
	return nil
}
