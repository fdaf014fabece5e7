package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finsynth",
	Short: "Synthetic financial dataset generator for warehouse testing",
	Long: `A multi-year synthetic financial dataset generator.

finsynth builds a star schema of dimension and fact tables: a daily
calendar spine, customers with lifecycle churn, products, a chart of
accounts and cost centers, plus a transaction fact table and the GL
postings derived from it (revenue, COGS, monthly OPEX allocation).

The same seed and parameters always produce byte-identical output.

Workflow:
  finsynth generate --seed 42 --output ./output
  finsynth schema | mysql -u root finsynth
  finsynth load --db "user:pass@tcp(localhost:3306)/finsynth"`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./finsynth.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors and animations")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Silence usage on error - we'll print our own messages
	rootCmd.SilenceUsage = true

	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// initConfig reads the optional config file and FINSYNTH_* environment
// variables. A missing config file is fine; an unreadable one is not.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("finsynth")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("FINSYNTH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// Verbose returns whether verbose mode is enabled
func Verbose() bool {
	return verbose
}
