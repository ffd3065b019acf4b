package providerchain

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go-v2/credentials/endpointcreds"
)

// Named sources recognised by DefaultRegistry.
const (
	SourceEnvironment  = "Environment"
	SourceEc2Metadata  = "Ec2InstanceMetadata"
	SourceEcsContainer = "EcsContainer"
	SourceSecretStore  = "SecretStore"
)

const ecsContainerHost = "http://169.254.170.2"

// NamedProviderRegistry maps provider names to shared credential providers.
// Read only after construction, safe for concurrent lookups across many
// chain builds.
type NamedProviderRegistry struct {
	providers map[string]aws.CredentialsProvider
}

func NewNamedProviderRegistry(providers map[string]aws.CredentialsProvider) *NamedProviderRegistry {
	m := make(map[string]aws.CredentialsProvider, len(providers))
	for name, p := range providers {
		m[name] = p
	}
	return &NamedProviderRegistry{providers: m}
}

// Provider looks up a provider by name. A miss is reported through the
// second return value, not an error - the caller decides how to treat it.
func (r *NamedProviderRegistry) Provider(name string) (aws.CredentialsProvider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// DefaultRegistry returns a registry populated with the built in named
// sources. EcsContainer is only registered when the container credential
// endpoint env vars are present.
func DefaultRegistry(username string) *NamedProviderRegistry {
	providers := map[string]aws.CredentialsProvider{
		SourceEnvironment: environmentProvider(),
		SourceEc2Metadata: ec2rolecreds.New(),
		SourceSecretStore: NewSecretStoreProvider(username),
	}
	if uri := ecsContainerURI(); uri != "" {
		providers[SourceEcsContainer] = endpointcreds.New(uri)
	}
	return NewNamedProviderRegistry(providers)
}

func environmentProvider() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		envCfg, err := config.NewEnvConfig()
		if err != nil {
			return aws.Credentials{}, err
		}
		if !envCfg.Credentials.HasKeys() {
			return aws.Credentials{}, fmt.Errorf("environment variables not set, %w", ErrMissingCredentials)
		}
		creds := envCfg.Credentials
		creds.Source = SourceEnvironment
		return creds, nil
	})
}

func ecsContainerURI() string {
	if uri, exists := os.LookupEnv("AWS_CONTAINER_CREDENTIALS_FULL_URI"); exists {
		return uri
	}
	if relative, exists := os.LookupEnv("AWS_CONTAINER_CREDENTIALS_RELATIVE_URI"); exists {
		return ecsContainerHost + relative
	}
	return ""
}
