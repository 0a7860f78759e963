package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"surveillance-map/be/client"
)

const configName = ".camctl"

var (
	cfgFile    string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "camctl",
	Short: "Manage the surveillance camera registry",
	Long: `camctl lists and edits cameras through the registry API and seeds
the store from the bundled WA Police and City of Perth datasets.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.camctl.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().String("host", "", "API base URL (overrides the saved one)")
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("host"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix("CAMCTL")
	viper.AutomaticEnv()
	viper.SetDefault("base_url", "http://localhost:3000")

	// A missing file is fine until the first login.
	_ = viper.ReadInConfig()
}

// saveSession persists the API location and token for later commands.
func saveSession(baseURL, token string) error {
	viper.Set("base_url", baseURL)
	viper.Set("token", token)

	if err := viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		home, herr := os.UserHomeDir()
		if herr != nil {
			return err
		}
		return viper.WriteConfigAs(filepath.Join(home, configName+".yaml"))
	}
	return nil
}

// apiClient returns a client for the configured server. Mutating commands
// pass requireToken so they fail before making a doomed request.
func apiClient(requireToken bool) (*client.Client, error) {
	api := client.New(viper.GetString("base_url"))
	token := viper.GetString("token")
	if token == "" && requireToken {
		return nil, fmt.Errorf("not logged in, run 'camctl login' first")
	}
	if token != "" {
		api.SetToken(token)
	}
	return api, nil
}
