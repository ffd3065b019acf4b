package cmd

import (
	"github.com/dnitsch/aws-creds-chain/internal/cmdutils"
	"github.com/dnitsch/aws-creds-chain/internal/util"
	"github.com/spf13/cobra"
)

var (
	storeAccessKey    string
	storeSecretKey    string
	storeSessionToken string
	storeCmd          = &cobra.Command{
		Use:   "store <flags>",
		Short: "Stores access keys in the OS secret store",
		Long:  `Stores access keys in the OS secret store, making them available to resolve as the SecretStore named base source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.StoreCreds(storeAccessKey, storeSecretKey, storeSessionToken)
		},
	}

	clearCmd = &cobra.Command{
		Use:   "clear-store <flags>",
		Short: "Clears any stored access keys in the OS secret store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutils.ClearStoredCreds(); err != nil {
				return err
			}
			util.Writeln("secret store cleared")
			return nil
		},
	}
)

func init() {
	storeCmd.PersistentFlags().StringVarP(&storeAccessKey, "access-key", "", "", "Access key id to store")
	storeCmd.MarkPersistentFlagRequired("access-key")
	storeCmd.PersistentFlags().StringVarP(&storeSecretKey, "secret-key", "", "", "Secret access key to store")
	storeCmd.MarkPersistentFlagRequired("secret-key")
	storeCmd.PersistentFlags().StringVarP(&storeSessionToken, "session-token", "", "", "Optional session token to store")
	RootCmd.AddCommand(storeCmd)
	RootCmd.AddCommand(clearCmd)
}
