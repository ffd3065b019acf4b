package providerchain

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/sts/types"
)

const assumeRoleProviderName = "AssumeRoleProvider"

// AssumeRoleApi is the single STS operation a hop needs.
type AssumeRoleApi interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// ClientConfig carries what a hop needs to reach STS: the region and a
// factory producing a client scoped to the upstream caller identity.
type ClientConfig struct {
	Region    string
	NewClient func(caller aws.Credentials) AssumeRoleApi
}

// NewClientConfig returns a ClientConfig backed by real STS clients in the
// given region.
func NewClientConfig(region string) ClientConfig {
	return ClientConfig{
		Region: region,
		NewClient: func(caller aws.Credentials) AssumeRoleApi {
			return sts.New(sts.Options{
				Region:      region,
				Credentials: credentials.StaticCredentialsProvider{Value: caller},
			})
		},
	}
}

// AssumeRoleProvider executes a single delegation hop against STS.
type AssumeRoleProvider struct {
	roleARN      string
	externalID   string
	sessionName  string
	sessionNamer SessionNamer
}

// RoleARN returns the role this hop assumes.
func (p AssumeRoleProvider) RoleARN() string {
	return p.roleARN
}

// ExternalID returns the confused-deputy token for this hop, empty when
// none was declared.
func (p AssumeRoleProvider) ExternalID() string {
	return p.externalID
}

// Credentials assumes the hop's role using the upstream credentials as the
// calling identity. A single network round trip, no internal retries - the
// cause of any failure is preserved for the caller.
func (p AssumeRoleProvider) Credentials(ctx context.Context, upstream aws.Credentials, cfg ClientConfig) (aws.Credentials, error) {
	if cfg.NewClient == nil {
		cfg = NewClientConfig(cfg.Region)
	}
	sessionName := p.sessionName
	if sessionName == "" {
		namer := p.sessionNamer
		if namer == nil {
			namer = DefaultSessionName
		}
		sessionName = namer(purposeAssumeRole)
	}
	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(p.roleARN),
		RoleSessionName: aws.String(sessionName),
	}
	if p.externalID != "" {
		input.ExternalId = aws.String(p.externalID)
	}
	resp, err := cfg.NewClient(upstream).AssumeRole(ctx, input)
	if err != nil {
		return aws.Credentials{}, &ProviderError{Provider: assumeRoleProviderName, RoleARN: p.roleARN, Err: err}
	}
	return intoCredentials(resp.Credentials, assumeRoleProviderName, p.roleARN)
}

// intoCredentials translates an STS credential payload into the canonical
// shape, attributed to the producing provider.
func intoCredentials(c *types.Credentials, provider, roleARN string) (aws.Credentials, error) {
	if c == nil || c.AccessKeyId == nil || c.SecretAccessKey == nil {
		return aws.Credentials{}, &ProviderError{Provider: provider, RoleARN: roleARN, Err: ErrMissingCredentials}
	}
	creds := aws.Credentials{
		AccessKeyID:     aws.ToString(c.AccessKeyId),
		SecretAccessKey: aws.ToString(c.SecretAccessKey),
		SessionToken:    aws.ToString(c.SessionToken),
		Source:          provider,
	}
	if c.Expiration != nil {
		creds.CanExpire = true
		creds.Expires = *c.Expiration
	}
	return creds, nil
}
