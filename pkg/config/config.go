package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// ConvertParams are the numeric output rules. Zero values fall back to
// the built-in defaults; environment variables (SVG2VECTOR_*) override
// the config file.
type ConvertParams struct {
	Precision   int     `yaml:"precision" envconfig:"PRECISION"`
	Epsilon     float64 `yaml:"epsilon" envconfig:"EPSILON"`
	ViewportMax float64 `yaml:"viewport_max" envconfig:"VIEWPORT_MAX"`
	Compact     bool    `yaml:"compact" envconfig:"COMPACT"`
}

// Job is one conversion: an SVG input and a VectorDrawable output.
type Job struct {
	InputFile  string        `yaml:"infile"`
	OutputFile string        `yaml:"outfile"`
	Params     ConvertParams `yaml:",inline"`
}

type Config struct {
	Defaults ConvertParams `yaml:"defaults"`
	Jobs     []Job         `yaml:"jobs"`
}

// Defaults are applied wherever the file and environment are silent.
var builtin = ConvertParams{
	Precision:   6,
	Epsilon:     1e-6,
	ViewportMax: 1000,
}

// New loads the config file, then applies environment overrides to the
// defaults.
func New(configFile string) *Config {
	config := &Config{}

	yamlcfg, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("read config file '%s': %v", configFile, err)
	}

	if err := yaml.Unmarshal(yamlcfg, &config); err != nil {
		log.Fatal("yaml.Unmarshal(): ", err)
	}

	config.finish()
	return config
}

// Empty returns a config with no jobs and built-in defaults, for runs
// driven entirely by command-line flags.
func Empty() *Config {
	config := &Config{}
	config.finish()
	return config
}

func (c *Config) finish() {
	if err := envconfig.Process("svg2vector", &c.Defaults); err != nil {
		log.Fatal("envconfig.Process(): ", err)
	}
	c.Defaults = merge(c.Defaults, builtin)
	for i := range c.Jobs {
		c.Jobs[i].Params = merge(c.Jobs[i].Params, c.Defaults)
	}
}

// merge fills zero-valued fields of p from fallback.
func merge(p, fallback ConvertParams) ConvertParams {
	if p.Precision == 0 {
		p.Precision = fallback.Precision
	}
	if p.Epsilon == 0 {
		p.Epsilon = fallback.Epsilon
	}
	if p.ViewportMax == 0 {
		p.ViewportMax = fallback.ViewportMax
	}
	p.Compact = p.Compact || fallback.Compact
	return p
}
