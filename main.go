package main

import (
	"crypto/sha1"
	"fmt"
	"os"

	"github.com/go-i2p/go-keymgr/lib/config"
	dsakeys "github.com/go-i2p/go-keymgr/lib/crypto/dsa"
	"github.com/go-i2p/go-keymgr/lib/keys"
	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logger.GetGoI2PLogger()

var (
	flagKeyDir    string
	flagName      string
	flagBits      int
	flagPub       bool
	flagExportOut string
	flagSignOut   string
)

func toolConfig() *config.KeyToolConfig {
	cfg := config.NewKeyToolConfigFromViper()
	if flagKeyDir != "" {
		cfg.KeyDir = flagKeyDir
	}
	return cfg
}

func keyStore(cfg *config.KeyToolConfig) *keys.DSAKeyStore {
	name := flagName
	if name == "" {
		name = cfg.DefaultKeyName
	}
	return keys.NewDSAKeyStore(cfg.KeyDir, name)
}

func digestFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h := sha1.Sum(data)
	return h[:], nil
}

var rootCmd = &cobra.Command{
	Use:   "go-keymgr",
	Short: "DSA key management toolkit",
	Long:  "Generates, stores, exports and uses DSA signing keys kept as PEM key files.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
	},
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a DSA key and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := toolConfig()
		bits := flagBits
		if bits == 0 {
			bits = cfg.DefaultBits
		}
		ks := keyStore(cfg)
		k, err := ks.LoadOrCreateKeys(bits)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d-bit DSA key at %s\n", ks.KeyID(), k.BitSize(), ks.KeyPath())
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a stored key to a PEM file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ks := keyStore(toolConfig())
		k, err := ks.LoadKeys()
		if err != nil {
			return err
		}
		if flagPub {
			material, err := k.PublicAttributes()
			if err != nil {
				return err
			}
			if k, err = dsakeys.CreateKey(material, false); err != nil {
				return err
			}
		}
		if err := keys.WriteKeyToFile(k, flagExportOut); err != nil {
			return err
		}
		fmt.Printf("exported %s to %s\n", ks.KeyID(), flagExportOut)
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show a stored key's parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ks := keyStore(toolConfig())
		k, err := ks.LoadKeys()
		if err != nil {
			return err
		}
		material, err := k.PublicAttributes()
		if err != nil {
			return err
		}
		visibility := "public"
		if k.HasPrivate() {
			visibility = "private"
		}
		fmt.Printf("name: %s\nkind: %s\nbits: %d\n", ks.KeyID(), visibility, k.BitSize())
		fmt.Printf("p: %d bytes\nq: %d bytes\ng: %d bytes\ny: %d bytes\n",
			len(material.P), len(material.Q), len(material.G), len(material.Y))
		return nil
	},
}

var signCmd = &cobra.Command{
	Use:   "sign <file>",
	Short: "Sign a file's SHA-1 digest with a stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks := keyStore(toolConfig())
		k, err := ks.LoadKeys()
		if err != nil {
			return err
		}
		digest, err := digestFile(args[0])
		if err != nil {
			return err
		}
		sig, err := k.Sign(digest)
		if err != nil {
			return err
		}
		out := flagSignOut
		if out == "" {
			out = args[0] + ".sig"
		}
		if err := os.WriteFile(out, sig, 0o644); err != nil {
			return err
		}
		fmt.Printf("signature written to %s\n", out)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <file> <sigfile>",
	Short: "Verify a signature against a file's SHA-1 digest",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks := keyStore(toolConfig())
		k, err := ks.LoadKeys()
		if err != nil {
			return err
		}
		digest, err := digestFile(args[0])
		if err != nil {
			return err
		}
		sig, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		ok, err := k.Verify(digest, sig)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("signature does NOT verify")
			os.Exit(1)
		}
		fmt.Println("signature verifies")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default $HOME/.go-keymgr/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagKeyDir, "dir", "", "key directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "key name (defaults to the configured name)")
	_ = viper.BindPFlag("key_dir", rootCmd.PersistentFlags().Lookup("dir"))

	keygenCmd.Flags().IntVar(&flagBits, "bits", 0, "modulus bit size (1024, 2048 or 3072)")
	exportCmd.Flags().BoolVar(&flagPub, "pub", false, "export the public key only")
	exportCmd.Flags().StringVar(&flagExportOut, "out", "key.pem", "output path")
	signCmd.Flags().StringVar(&flagSignOut, "out", "", "signature output path (default <file>.sig)")

	rootCmd.AddCommand(keygenCmd, exportCmd, inspectCmd, signCmd, verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("go-keymgr: %s", err)
		os.Exit(2)
	}
}
