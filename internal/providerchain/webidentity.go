package providerchain

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// newWebIdentityProvider builds the long lived federated token provider for
// a WebIdentityRole base. Construction never fails - reading the token file
// and the token exchange happen at retrieval time.
func newWebIdentityProvider(base WebIdentityRole, cfg ClientConfig, namer SessionNamer) aws.CredentialsProvider {
	sessionName := base.SessionName
	if sessionName == "" {
		sessionName = namer(purposeWebIdentity)
	}
	client := sts.New(sts.Options{
		Region:      cfg.Region,
		Credentials: aws.AnonymousCredentials{},
	})
	return stscreds.NewWebIdentityRoleProvider(
		client,
		base.RoleARN,
		stscreds.IdentityTokenFile(base.TokenFile),
		func(o *stscreds.WebIdentityRoleOptions) {
			o.RoleSessionName = sessionName
		},
	)
}
