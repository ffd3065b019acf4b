package cmd

import (
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/dnitsch/aws-creds-chain/internal/cmdutils"
	"github.com/dnitsch/aws-creds-chain/internal/providerchain"
	"github.com/spf13/cobra"
)

var (
	namedSource      string
	accessKey        string
	secretKey        string
	sessionToken     string
	webIdRole        string
	webIdTokenFile   string
	webIdSessionName string
	roleChain        []string
	externalId       string
	sessionName      string

	resolveCmd = &cobra.Command{
		Use:   "resolve <flags>",
		Short: "Resolves a credential chain and outputs AWS temporary credentials",
		Long: `Resolves a credential chain and outputs AWS temporary credentials.
The base source is one of a named provider (--source-named), static access keys (--access-key/--secret-key), or a web identity token file (--web-id-role).
Each --role-chain entry is assumed in order, using the credentials produced by the previous step.`,
		RunE: resolve,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateBaseFlags()
		},
	}
)

func init() {
	resolveCmd.PersistentFlags().StringVarP(&namedSource, "source-named", "n", "", "Named base credential source - e.g. Environment, Ec2InstanceMetadata, EcsContainer, SecretStore")
	resolveCmd.PersistentFlags().StringVarP(&accessKey, "access-key", "", "", "Static access key id used as the base credential source")
	resolveCmd.PersistentFlags().StringVarP(&secretKey, "secret-key", "", "", "Static secret access key, required with --access-key")
	resolveCmd.PersistentFlags().StringVarP(&sessionToken, "session-token", "", "", "Optional session token accompanying the static key pair")
	resolveCmd.PersistentFlags().StringVarP(&webIdRole, "web-id-role", "", "", "Role Arn assumed with the web identity token as the base credential source")
	resolveCmd.PersistentFlags().StringVarP(&webIdTokenFile, "web-id-token-file", "", "", fmt.Sprintf("Path to the web identity token file, falls back to %s", providerchain.WEB_ID_TOKEN_VAR))
	resolveCmd.PersistentFlags().StringVarP(&webIdSessionName, "web-id-session-name", "", "", "Session name for the web identity exchange, generated when empty")
	resolveCmd.PersistentFlags().StringArrayVarP(&roleChain, "role-chain", "r", []string{}, "Role Arn to assume, repeatable - each entry uses the credentials produced by the previous one")
	resolveCmd.PersistentFlags().StringVarP(&externalId, "external-id", "e", "", "External Id passed on the final role-chain entry")
	resolveCmd.PersistentFlags().StringVarP(&sessionName, "session-name", "", "", "Session name for the final role-chain entry, generated when empty")
	RootCmd.AddCommand(resolveCmd)
}

func validateBaseFlags() error {
	set := 0
	for _, flagged := range []bool{namedSource != "", accessKey != "" || secretKey != "", webIdRole != ""} {
		if flagged {
			set++
		}
	}
	if set == 0 {
		return fmt.Errorf("one of --source-named, --access-key/--secret-key or --web-id-role is required %w", cmdutils.ErrMissingArg)
	}
	if set > 1 {
		return fmt.Errorf("only one base source can be specified %w", cmdutils.ErrMissingArg)
	}
	if accessKey != "" && secretKey == "" || accessKey == "" && secretKey != "" {
		return fmt.Errorf("access-key and secret-key must both be provided %w", cmdutils.ErrMissingArg)
	}
	return nil
}

func baseFromFlags() (providerchain.BaseProvider, error) {
	switch {
	case namedSource != "":
		return providerchain.NamedSource{Name: namedSource}, nil
	case accessKey != "":
		return providerchain.StaticCreds{
			AccessKey:    accessKey,
			SecretKey:    secretKey,
			SessionToken: sessionToken,
		}, nil
	default:
		tokenFile := webIdTokenFile
		if tokenFile == "" {
			tokenFile = os.Getenv(providerchain.WEB_ID_TOKEN_VAR)
		}
		if tokenFile == "" {
			return nil, fmt.Errorf("web-id-token-file not provided and %s is empty %w", providerchain.WEB_ID_TOKEN_VAR, cmdutils.ErrMissingArg)
		}
		return providerchain.WebIdentityRole{
			RoleARN:     webIdRole,
			TokenFile:   tokenFile,
			SessionName: webIdSessionName,
		}, nil
	}
}

func resolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	base, err := baseFromFlags()
	if err != nil {
		return err
	}

	hops := make([]providerchain.RoleHop, 0, len(roleChain))
	for i, roleArn := range roleChain {
		hop := providerchain.RoleHop{RoleARN: roleArn}
		if i == len(roleChain)-1 {
			hop.ExternalID = externalId
			hop.SessionName = sessionName
		}
		hops = append(hops, hop)
	}

	if region == "" {
		if awsCfg, err := awsconfig.LoadDefaultConfig(ctx); err == nil {
			region = awsCfg.Region
		}
	}

	registry, err := cmdutils.DefaultRegistry()
	if err != nil {
		return err
	}

	conf := providerchain.CredentialConfig{
		Region: region,
		BaseConfig: providerchain.BaseConfig{
			CfgSectionName: cfgSectionName,
			StoreInProfile: storeInProfile,
		},
	}
	return cmdutils.GetCredsFromChain(ctx, conf, providerchain.ProfileChain{Base: base, Chain: hops}, registry)
}
