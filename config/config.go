package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tranvictor/schoolfactory/networks"
)

const (
	EnvPrefix = "SCHOOLFACTORY"

	KeyNetwork        = "network"
	KeyNode           = "node"
	KeyKeystore       = "keystore"
	KeyExplorerAPIKey = "explorer_api_key"
	KeyChunkSize      = "chunk_size"

	DefaultChunkSize uint64 = 5000
)

// Flag targets. Persistent settings are overwritten by Load with the
// merged flag, env and file value.
var (
	ConfigFile string
	Debug      bool

	Network        string
	Node           string
	Keystore       string
	ExplorerAPIKey string
	ChunkSize      uint64

	ExtraGasLimit     uint64
	TipGas            float64
	DontBroadcast     bool
	DontWaitToBeMined bool
	YesToAll          bool

	FromBlock      uint64
	ToBlock        int64
	JSONOutputFile string
	NoIndex        bool
	SearchLimit    int

	JSONOutput   bool
	ForceRefresh bool
)

func DefaultConfigFile() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, ".schoolfactory", "config.yaml")
}

// Settings holds the keys that may come from the config file.
type Settings struct {
	Network        string `mapstructure:"network"`
	Node           string `mapstructure:"node"`
	Keystore       string `mapstructure:"keystore"`
	ExplorerAPIKey string `mapstructure:"explorer_api_key"`
	ChunkSize      uint64 `mapstructure:"chunk_size"`
}

// flagNames maps config keys to the cobra flag that may override them.
var flagNames = map[string]string{
	KeyNetwork:   "network",
	KeyNode:      "node",
	KeyKeystore:  "keystore",
	KeyChunkSize: "chunk",
}

// Read merges, highest first, explicitly set flags, SCHOOLFACTORY_* env
// vars, the yaml file at path and the defaults. A missing file is not an
// error.
func Read(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault(KeyNetwork, networks.DefaultNetwork)
	v.SetDefault(KeyChunkSize, DefaultChunkSize)

	for _, key := range []string{KeyNetwork, KeyNode, KeyKeystore, KeyExplorerAPIKey, KeyChunkSize} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	if flags != nil {
		for key, name := range flagNames {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	result := &Settings{}
	if err := v.Unmarshal(result); err != nil {
		return nil, err
	}
	if result.ChunkSize == 0 {
		result.ChunkSize = DefaultChunkSize
	}
	return result, nil
}

// Load reads the settings and stores them into the package variables.
func Load(path string, flags *pflag.FlagSet) error {
	s, err := Read(path, flags)
	if err != nil {
		return err
	}
	Network = s.Network
	Node = s.Node
	Keystore = s.Keystore
	ExplorerAPIKey = s.ExplorerAPIKey
	ChunkSize = s.ChunkSize
	return nil
}
