package model

// Config holds the converter configuration.
// Hierarchy (highest to lowest priority): CLI flags, environment
// variables (GFCONV_*), config file (~/.gfconv/config.yaml), defaults.
type Config struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"` // directory for binary artifacts
	Glob      string `yaml:"glob" mapstructure:"glob"`             // pattern for source files under a directory
	Sentinel  string `yaml:"sentinel" mapstructure:"sentinel"`     // 2-character block delimiter prefix
	Operator  string `yaml:"operator" mapstructure:"operator"`     // operator identifier embedded in artifacts
	Compress  string `yaml:"compress" mapstructure:"compress"`     // artifact compression: none, zstd, lz4
	Verbose   bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: ".",
		Glob:      "*.j*",
		Sentinel:  "##",
		Operator:  "",
		Compress:  "none",
		Verbose:   false,
	}
}
