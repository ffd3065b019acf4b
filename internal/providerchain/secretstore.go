package providerchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/zalando/go-keyring"
)

// Keyring is the subset of the OS secret service the store uses.
type Keyring interface {
	Set(service, user, password string) error
	Get(service, user string) (string, error)
	Delete(service, user string) error
}

// keyRingImpl is the default keyring implementation
type keyRingImpl struct{}

func (k *keyRingImpl) Set(service, user, password string) error {
	return keyring.Set(service, user, password)
}
func (k *keyRingImpl) Get(service, user string) (string, error) {
	return keyring.Get(service, user)
}
func (k *keyRingImpl) Delete(service, user string) error {
	return keyring.Delete(service, user)
}

// SecretStoreProvider supplies access keys previously saved under the OS
// secret service. It is a base credential source like any other named
// provider, not a cache of issued chain output.
type SecretStoreProvider struct {
	keyring    Keyring
	secretUser string
}

var _ aws.CredentialsProvider = (*SecretStoreProvider)(nil)

func NewSecretStoreProvider(username string) *SecretStoreProvider {
	return &SecretStoreProvider{
		keyring:    &keyRingImpl{},
		secretUser: username,
	}
}

func (s *SecretStoreProvider) WithKeyring(keyring Keyring) *SecretStoreProvider {
	s.keyring = keyring
	return s
}

// Retrieve implements aws.CredentialsProvider.
func (s *SecretStoreProvider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	jsonStr, err := s.keyring.Get(SELF_NAME, s.secretUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return aws.Credentials{}, fmt.Errorf("%s, %w", s.secretUser, ErrNoStoredCredential)
		}
		return aws.Credentials{}, err
	}
	stored := &AWSCredentials{}
	if err := json.Unmarshal([]byte(jsonStr), stored); err != nil {
		return aws.Credentials{}, fmt.Errorf("%s, %w", err, ErrUnmarshalSecret)
	}
	return aws.Credentials{
		AccessKeyID:     stored.AWSAccessKey,
		SecretAccessKey: stored.AWSSecretKey,
		SessionToken:    stored.AWSSessionToken,
		Source:          SourceSecretStore,
	}, nil
}

// Save persists access keys for later retrieval under the SecretStore
// named source.
func (s *SecretStoreProvider) Save(creds *AWSCredentials) error {
	jsonBytes, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.keyring.Set(SELF_NAME, s.secretUser, string(jsonBytes))
}

// Clear removes the stored keys. Missing entries are not an error.
func (s *SecretStoreProvider) Clear() error {
	if err := s.keyring.Delete(SELF_NAME, s.secretUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
