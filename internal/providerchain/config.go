package providerchain

const (
	SELF_NAME        = "aws-creds-chain"
	WEB_ID_TOKEN_VAR = "AWS_WEB_IDENTITY_TOKEN_FILE"
	AWS_ROLE_ARN     = "AWS_ROLE_ARN"
)

type BaseConfig struct {
	CfgSectionName string
	StoreInProfile bool
}

type CredentialConfig struct {
	BaseConfig BaseConfig
	Region     string
}
