// Package config loads the timing simulator's Config.txt: eight integer
// parameters controlling queue depths, pipeline depths, bank count and
// lane count. Config.txt's flat `key = value` syntax with `#` comments is
// valid TOML, so the file is decoded directly with
// github.com/BurntSushi/toml rather than a hand-rolled key=value scanner.
package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Config holds the eight required Config.txt keys.
type Config struct {
	DataQueueDepth    int `toml:"dataQueueDepth"`
	ComputeQueueDepth int `toml:"computeQueueDepth"`
	VDMNumBanks       int `toml:"vdmNumBanks"`
	VLSPipelineDepth  int `toml:"vlsPipelineDepth"`
	NumLanes          int `toml:"numLanes"`
	PipelineDepthAdd  int `toml:"pipelineDepthAdd"`
	PipelineDepthMul  int `toml:"pipelineDepthMul"`
	PipelineDepthDiv  int `toml:"pipelineDepthDiv"`
}

// requiredKeys lists every Config.txt key, used to detect omissions: TOML
// decoding silently leaves an absent key at its zero value, but a missing
// config parameter is a fatal ConfigError, not a silent zero.
var requiredKeys = []string{
	"dataQueueDepth", "computeQueueDepth", "vdmNumBanks", "vlsPipelineDepth",
	"numLanes", "pipelineDepthAdd", "pipelineDepthMul", "pipelineDepthDiv",
}

// ConfigError reports a missing key or a value that failed to decode.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Key, e.Err)
	}

	return fmt.Sprintf("config: missing key %q", e.Key)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Load decodes Config.txt from r, requiring all eight keys: a non-integer
// value is a decode error, and an absent key is reported by name rather
// than silently defaulting to zero. Keys other than the eight are ignored.
func Load(r io.Reader) (Config, error) {
	var cfg Config

	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, &ConfigError{Key: "Config.txt", Err: err}
	}

	for _, key := range requiredKeys {
		if !md.IsDefined(key) {
			return Config{}, &ConfigError{Key: key}
		}
	}

	return cfg, nil
}
