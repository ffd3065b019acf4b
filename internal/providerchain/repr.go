package providerchain

// ProfileChain is the already validated declarative form of a credential
// chain: one base source plus the roles to assume with it, in order.
// Hop order is significant and is preserved exactly as declared.
type ProfileChain struct {
	Base  BaseProvider
	Chain []RoleHop
}

// BaseProvider is the closed set of base credential sources a chain can
// start from.
type BaseProvider interface {
	isBaseProvider()
}

// NamedSource refers to a provider registered under a well known name,
// e.g. Environment or Ec2InstanceMetadata.
type NamedSource struct {
	Name string
}

// StaticCreds holds an access key pair declared inline.
type StaticCreds struct {
	AccessKey    string
	SecretKey    string
	SessionToken string
}

// WebIdentityRole sources base credentials by exchanging a web identity
// token read from a file for role credentials.
type WebIdentityRole struct {
	RoleARN     string
	TokenFile   string
	SessionName string
}

func (NamedSource) isBaseProvider()     {}
func (StaticCreds) isBaseProvider()     {}
func (WebIdentityRole) isBaseProvider() {}

// RoleHop describes a single assume-role step. ExternalID and SessionName
// are optional - empty string means absent. When SessionName is absent a
// default is generated at execution time, not at build time.
type RoleHop struct {
	RoleARN     string
	ExternalID  string
	SessionName string
}
