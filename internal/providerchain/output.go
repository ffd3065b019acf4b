package providerchain

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/werf/lockgate"
	"github.com/werf/lockgate/pkg/file_locker"
	ini "gopkg.in/ini.v1"
)

// AWSCredentials is the credential_process v1 payload shape.
type AWSCredentials struct {
	Version         int
	AWSAccessKey    string    `json:"AccessKeyId"`
	AWSSecretKey    string    `json:"SecretAccessKey"`
	AWSSessionToken string    `json:"SessionToken"`
	Expires         time.Time `json:"Expiration"`
}

// FromAwsCredentials converts the canonical SDK shape into the
// credential_process payload.
func FromAwsCredentials(creds aws.Credentials) *AWSCredentials {
	out := &AWSCredentials{
		AWSAccessKey:    creds.AccessKeyID,
		AWSSecretKey:    creds.SecretAccessKey,
		AWSSessionToken: creds.SessionToken,
	}
	if creds.CanExpire {
		out.Expires = creds.Expires.Local()
	}
	return out
}

func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatal("unable to get the user home dir")
	}
	return home
}

// SetCredentials either stores the credentials under a named section of the
// shared AWS credentials file or emits the credential_process payload to
// stdout.
func SetCredentials(creds *AWSCredentials, config CredentialConfig) error {
	if config.BaseConfig.StoreInProfile {
		return storeCredentialsInProfile(*creds, config.BaseConfig.CfgSectionName)
	}
	return returnStdOutAsJson(*creds)
}

func storeCredentialsInProfile(creds AWSCredentials, configSection string) error {
	awsConfPath := sharedCredentialsFile()

	release, err := lockSharedCredentialsFile()
	if err != nil {
		return err
	}
	defer release()

	cfg, err := ini.LooseLoad(awsConfPath)
	if err != nil {
		return err
	}
	cfg.Section(configSection).Key("aws_access_key_id").SetValue(creds.AWSAccessKey)
	cfg.Section(configSection).Key("aws_secret_access_key").SetValue(creds.AWSSecretKey)
	cfg.Section(configSection).Key("aws_session_token").SetValue(creds.AWSSessionToken)
	return cfg.SaveTo(awsConfPath)
}

func sharedCredentialsFile() string {
	if overriddenPath, exists := os.LookupEnv("AWS_SHARED_CREDENTIALS_FILE"); exists {
		return overriddenPath
	}
	awsDir := path.Join(HomeDir(), ".aws")
	if _, err := os.Stat(awsDir); os.IsNotExist(err) {
		os.Mkdir(awsDir, 0755)
	}
	return path.Join(awsDir, "credentials")
}

// lockSharedCredentialsFile guards against concurrent invocations writing
// the same file, e.g. two credential_process calls racing.
func lockSharedCredentialsFile() (func(), error) {
	lockDir := path.Join(os.TempDir(), fmt.Sprintf("%s-lock", SELF_NAME))
	locker, err := file_locker.NewFileLocker(lockDir)
	if err != nil {
		return nil, fmt.Errorf("cannot setup lock dir: %s", lockDir)
	}
	acquired, lock, err := locker.Acquire("aws-credentials-file", lockgate.AcquireOptions{Shared: false, Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("cannot acquire lock in: %s", lockDir)
	}
	return func() {
		if err := locker.Release(lock); err != nil {
			fmt.Fprintf(os.Stderr, "failed to release lock: %v\n", err)
		}
	}, nil
}

func returnStdOutAsJson(creds AWSCredentials) error {
	creds.Version = 1

	jsonBytes, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, string(jsonBytes))
	return nil
}
