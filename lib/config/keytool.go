package config

import (
	"path/filepath"
)

// key tool options
type KeyToolConfig struct {
	// the path to the base directory where toolkit state lives
	BaseDir string
	// the path to the directory key files are stored in
	KeyDir string
	// modulus bit size used when generating keys without an explicit size
	DefaultBits int
	// key name used when none is given on the command line
	DefaultKeyName string
}

func defaultKeyDir() string {
	return filepath.Join(BuildKeyMgrDirPath(), "keys")
}

// defaults for the key tool
var defaultKeyToolConfig = &KeyToolConfig{
	BaseDir:        BuildKeyMgrDirPath(),
	KeyDir:         defaultKeyDir(),
	DefaultBits:    2048,
	DefaultKeyName: "default",
}

func DefaultKeyToolConfig() *KeyToolConfig {
	return defaultKeyToolConfig
}
