package config

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/go-keymgr/lib/util"
	"github.com/go-i2p/logger"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const GOKEYMGR_BASE_DIR = ".go-keymgr"

func InitConfig() {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		// Set up viper to use the default config path $HOME/.go-keymgr/
		viper.AddConfigPath(BuildKeyMgrDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Load defaults
	setDefaults()

	// handle config file creating it if needed
	handleConfigFile()
}

func setDefaults() {
	viper.SetDefault("base_dir", DefaultKeyToolConfig().BaseDir)
	viper.SetDefault("key_dir", DefaultKeyToolConfig().KeyDir)
	viper.SetDefault("default_bits", DefaultKeyToolConfig().DefaultBits)
	viper.SetDefault("default_key_name", DefaultKeyToolConfig().DefaultKeyName)
}

// NewKeyToolConfigFromViper creates a new KeyToolConfig from current viper settings
func NewKeyToolConfigFromViper() *KeyToolConfig {
	return &KeyToolConfig{
		BaseDir:        viper.GetString("base_dir"),
		KeyDir:         viper.GetString("key_dir"),
		DefaultBits:    viper.GetInt("default_bits"),
		DefaultKeyName: viper.GetString("default_key_name"),
	}
}

func createDefaultConfig(defaultConfigDir string) {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	// Ensure directory exists
	if err := os.MkdirAll(defaultConfigDir, 0o755); err != nil {
		log.Fatalf("Could not create config directory: %s", err)
	}

	// Write current config file
	if err := viper.WriteConfigAs(defaultConfigFile); err != nil {
		log.Fatalf("Could not write default config file: %s", err)
	}

	log.Debugf("Created default configuration at: %s", defaultConfigFile)
}

func handleConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if CfgFile != "" {
				log.Fatalf("Config file %s is not found: %s", CfgFile, err)
			} else {
				createDefaultConfig(BuildKeyMgrDirPath())
			}
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	} else {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func BuildKeyMgrDirPath() string {
	return filepath.Join(util.UserHome(), GOKEYMGR_BASE_DIR)
}
