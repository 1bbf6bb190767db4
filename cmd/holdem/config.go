package main

import (
	"os"
)

// ConfigCmd prints the configuration after defaults are applied, ready to be
// saved as a starting holdem.hcl.
type ConfigCmd struct{}

func (c *ConfigCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(cfg.Encode())
	return err
}
