package graph

import (
	"strings"

	"github.com/BurntSushi/toml"
)

const DEFAULT_GRAPH_CONFIG = `
# Graph Store Configuration.

[store]
# badger or bolt
engine = "badger"
data-path = "/tmp/baudgraph/data"
# fsync every commit
sync = true
# maintain the property equality index
index-properties = true

[log]
#debug, info, warn, error
level = "info"
`

const (
	CONFIG_ENGINE_BADGER = "badger"
	CONFIG_ENGINE_BOLT   = "bolt"

	CONFIG_LOG_LEVEL_DEBUG = "debug"
	CONFIG_LOG_LEVEL_INFO  = "info"
	CONFIG_LOG_LEVEL_WARN  = "warn"
	CONFIG_LOG_LEVEL_ERROR = "error"
)

type Config struct {
	StoreCfg StoreConfig `toml:"store,omitempty" json:"store"`
	LogCfg   LogConfig   `toml:"log,omitempty" json:"log"`
}

type StoreConfig struct {
	Engine          string `toml:"engine,omitempty" json:"engine"`
	DataPath        string `toml:"data-path,omitempty" json:"data-path"`
	Sync            bool   `toml:"sync" json:"sync"`
	IndexProperties bool   `toml:"index-properties" json:"index-properties"`
}

type LogConfig struct {
	Level string `toml:"level,omitempty" json:"level"`
}

// NewConfig builds a Config from the default document, overlaid with
// the file at path when one is given.
func NewConfig(path string) (*Config, error) {
	c := new(Config)

	if _, err := toml.Decode(DEFAULT_GRAPH_CONFIG, c); err != nil {
		return nil, invalidErr("decode default config: %v", err)
	}

	if len(path) != 0 {
		if _, err := toml.DecodeFile(path, c); err != nil {
			return nil, invalidErr("decode config file %v: %v", path, err)
		}
	}

	if err := c.adjust(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) adjust() error {
	if err := c.StoreCfg.adjust(); err != nil {
		return err
	}
	return c.LogCfg.adjust()
}

func (cfg *StoreConfig) adjust() error {
	cfg.Engine = strings.ToLower(cfg.Engine)
	switch cfg.Engine {
	case CONFIG_ENGINE_BADGER, CONFIG_ENGINE_BOLT:
	default:
		return invalidErr("invalid engine[%v]", cfg.Engine)
	}
	if len(cfg.DataPath) == 0 {
		return invalidErr("no data path")
	}
	return nil
}

func (cfg *LogConfig) adjust() error {
	cfg.Level = strings.ToLower(cfg.Level)
	switch cfg.Level {
	case CONFIG_LOG_LEVEL_DEBUG:
	case CONFIG_LOG_LEVEL_INFO:
	case CONFIG_LOG_LEVEL_WARN:
	case CONFIG_LOG_LEVEL_ERROR:
	default:
		return invalidErr("invalid log level[%v]", cfg.Level)
	}
	return nil
}
