package cmdutils

import (
	"context"
	"errors"
	"fmt"
	"os/user"

	"github.com/dnitsch/aws-creds-chain/internal/providerchain"
)

var ErrMissingArg = errors.New("missing arg")

// GetCredsFromChain builds the provider chain from its declarative form,
// executes it and hands the result to the configured output - either the
// credential_process payload on stdout or a section of the shared AWS
// credentials file.
func GetCredsFromChain(ctx context.Context, conf providerchain.CredentialConfig, repr providerchain.ProfileChain, registry *providerchain.NamedProviderRegistry) error {
	if conf.BaseConfig.CfgSectionName == "" && conf.BaseConfig.StoreInProfile {
		return fmt.Errorf("cfg-section name must be provided if store-profile is enabled %w", ErrMissingArg)
	}

	chain, err := providerchain.NewProviderChain(providerchain.NewClientConfig(conf.Region), repr, registry)
	if err != nil {
		return err
	}
	creds, err := chain.Retrieve(ctx)
	if err != nil {
		return err
	}
	return providerchain.SetCredentials(providerchain.FromAwsCredentials(creds), conf)
}

// DefaultRegistry builds the built in named sources for the current user.
func DefaultRegistry() (*providerchain.NamedProviderRegistry, error) {
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}
	return providerchain.DefaultRegistry(currentUser.Username), nil
}

// StoreCreds saves access keys in the OS secret store for use via the
// SecretStore named source.
func StoreCreds(accessKey, secretKey, sessionToken string) error {
	if accessKey == "" || secretKey == "" {
		return fmt.Errorf("access-key and secret-key must both be provided %w", ErrMissingArg)
	}
	store, err := secretStore()
	if err != nil {
		return err
	}
	return store.Save(&providerchain.AWSCredentials{
		Version:         1,
		AWSAccessKey:    accessKey,
		AWSSecretKey:    secretKey,
		AWSSessionToken: sessionToken,
	})
}

// ClearStoredCreds removes any access keys held in the OS secret store.
func ClearStoredCreds() error {
	store, err := secretStore()
	if err != nil {
		return err
	}
	return store.Clear()
}

func secretStore() (*providerchain.SecretStoreProvider, error) {
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}
	return providerchain.NewSecretStoreProvider(currentUser.Username), nil
}
