package main

import (
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	username        string
	seed            string
	credentialsHash string
	configPath      string
	envFile         string
	logLevel        string
	logFormat       string
	verbose         bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "blindx",
		Short: "blindx - blind embeddings and encrypt text with credential-derived keys.",
		Long: `blindx derives a 384×384 orthogonal matrix and an AES-256-GCM key from
a username, password and six-digit privacy seed, then uses them to blind
embedding vectors and encrypt text.

The password is read from BLINDX_PASSWORD or prompted for without echo.
It is never accepted as a flag.

Usage:
  blindx <command> [flags]

Run 'blindx help <command>' for more details on a specific command.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.username, "username", "u", "", "username (default $"+envUsername+")")
	flags.StringVarP(&opts.seed, "seed", "s", "", "six-digit privacy seed (default $"+envSeed+")")
	flags.StringVar(&opts.credentialsHash, "credentials-hash", "", "64-character hex credentials hash used instead of username and password (default $"+envCredentialsHash+")")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file with BLINDX_* settings")
	flags.StringVar(&opts.logLevel, "log-level", "", "override log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "override log format: json, text, console")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log session events")

	rootCmd.AddCommand(newSelftestCmd(opts))
	rootCmd.AddCommand(newEncryptCmd(opts))
	rootCmd.AddCommand(newDecryptCmd(opts))
	rootCmd.AddCommand(newTransformCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
