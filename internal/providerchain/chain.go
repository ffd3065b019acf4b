package providerchain

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/dnitsch/aws-creds-chain/internal/util"
)

// ProviderChain is a resolved credential chain: the base source plus the
// assume-role hops in declaration order. Immutable once built and safe for
// concurrent Retrieve calls - each call keeps its own in-flight credential.
type ProviderChain struct {
	base aws.CredentialsProvider
	hops []AssumeRoleProvider
	cfg  ClientConfig
}

var _ aws.CredentialsProvider = (*ProviderChain)(nil)

type ChainOption func(*chainOptions)

type chainOptions struct {
	sessionNamer SessionNamer
}

// WithSessionNamer overrides the generator used for defaulted session names.
func WithSessionNamer(namer SessionNamer) ChainOption {
	return func(o *chainOptions) {
		o.sessionNamer = namer
	}
}

// NewProviderChain resolves the declarative chain against the registry.
// The base is resolved exactly once here, before any hop is constructed -
// a named source the registry cannot satisfy fails the whole build with
// zero network I/O and no partial chain. Role ARNs are not validated,
// that is left to STS.
func NewProviderChain(cfg ClientConfig, repr ProfileChain, registry *NamedProviderRegistry, opts ...ChainOption) (*ProviderChain, error) {
	options := chainOptions{sessionNamer: DefaultSessionName}
	for _, opt := range opts {
		opt(&options)
	}

	var base aws.CredentialsProvider
	switch b := repr.Base.(type) {
	case NamedSource:
		p, ok := registry.Provider(b.Name)
		if !ok {
			return nil, fmt.Errorf("profile referenced %q provider but that %w", b.Name, ErrUnknownProvider)
		}
		base = p
		util.Traceln("first credentials will be loaded from the %s provider", b.Name)
	case StaticCreds:
		base = credentials.NewStaticCredentialsProvider(b.AccessKey, b.SecretKey, b.SessionToken)
		util.Traceln("first credentials will be loaded from static access keys")
	case WebIdentityRole:
		base = newWebIdentityProvider(b, cfg, options.sessionNamer)
		util.Traceln("first credentials will be loaded from the web identity token file for %s", b.RoleARN)
	default:
		return nil, fmt.Errorf("profile referenced a %T provider but that %w", repr.Base, ErrUnknownProvider)
	}

	hops := make([]AssumeRoleProvider, 0, len(repr.Chain))
	for _, hop := range repr.Chain {
		util.Traceln("which will be used to assume %s", hop.RoleARN)
		hops = append(hops, AssumeRoleProvider{
			roleARN:      hop.RoleARN,
			externalID:   hop.ExternalID,
			sessionName:  hop.SessionName,
			sessionNamer: options.sessionNamer,
		})
	}
	return &ProviderChain{base: base, hops: hops, cfg: cfg}, nil
}

// Base returns the resolved base provider.
func (p *ProviderChain) Base() aws.CredentialsProvider {
	return p.base
}

// Hops returns the assume-role hops in declaration order.
func (p *ProviderChain) Hops() []AssumeRoleProvider {
	hops := make([]AssumeRoleProvider, len(p.hops))
	copy(hops, p.hops)
	return hops
}

// Retrieve executes the chain: base first, then each hop in order, each
// consuming only the credentials produced by the step directly before it.
// The first failure halts execution, and a cancelled context stops the
// chain before the next hop is issued - no partial result is returned.
func (p *ProviderChain) Retrieve(ctx context.Context) (aws.Credentials, error) {
	creds, err := p.base.Retrieve(ctx)
	if err != nil {
		return aws.Credentials{}, &ProviderError{Provider: "base credentials provider", Err: err}
	}
	for _, hop := range p.hops {
		if err := ctx.Err(); err != nil {
			return aws.Credentials{}, err
		}
		creds, err = hop.Credentials(ctx, creds, p.cfg)
		if err != nil {
			return aws.Credentials{}, err
		}
	}
	return creds, nil
}
