package cmd

import (
	"fmt"
	"os"

	"github.com/dnitsch/aws-creds-chain/internal/providerchain"
	"github.com/dnitsch/aws-creds-chain/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgSectionName string
	cfgFile        string
	storeInProfile bool
	region         string
	verbose        bool
	RootCmd        = &cobra.Command{
		Use:   "aws-creds-chain",
		Short: "CLI tool for resolving chained AWS temporary credentials",
		Long: `CLI tool for resolving a credential chain - a base credential source followed by any number of role assumptions - into AWS temporary credentials.
Useful in situations like CI jobs or containers where the calling identity has to traverse several roles.
Returns the credential_process payload for use in config, or stores the credentials under the $HOME/.aws/credentials file under a specified path`,
	}
)

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		util.Exit(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVarP(&region, "region", "", "", "AWS region the STS calls are made in, falls back to the SDK default config when empty")
	RootCmd.PersistentFlags().StringVarP(&cfgSectionName, "cfg-section", "", "", "config section name in the AWS credentials file")
	RootCmd.PersistentFlags().BoolVarP(&storeInProfile, "store-profile", "s", false, "By default the credentials are returned to stdout to be used by the credential_process. Set this flag to instead store the credentials under a named profile section")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(fmt.Sprintf(".%s", providerchain.SELF_NAME))
	}

	viper.AutomaticEnv()

	util.IsTraceEnabled = verbose

	if err := viper.ReadInConfig(); err == nil {
		util.Traceln("Using config file: %s", viper.ConfigFileUsed())
	}
}
