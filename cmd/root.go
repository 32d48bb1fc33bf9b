package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/bgraf/trackmix/config"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trackmix",
	Short: "Load, merge and enrich GPX, TCX and FIT tracks",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trackmix.yaml)")

	rootCmd.PersistentFlags().String("min-date", "", "Hide tracks before this day (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("max-date", "", "Hide tracks after this day (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("locale", "", "Locale of labels and dates (en_US, ru_RU)")

	bindFlag(rootCmd, config.KeyFilterMinDate, "min-date")
	bindFlag(rootCmd, config.KeyFilterMaxDate, "max-date")
	bindFlag(rootCmd, config.KeyLocale, "locale")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}

	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in working and home directory with name ".trackmix" (without extension).
		if dir, err := os.Getwd(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".trackmix")
	}

	viper.SetEnvPrefix("trackmix")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
