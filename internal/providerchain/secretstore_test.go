package providerchain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dnitsch/aws-creds-chain/internal/providerchain"
	"github.com/zalando/go-keyring"
)

type mockKeyring struct {
	entries map[string]string
}

func newMockKeyring() *mockKeyring {
	return &mockKeyring{entries: map[string]string{}}
}

func (m *mockKeyring) Set(service, user, password string) error {
	m.entries[service+"/"+user] = password
	return nil
}

func (m *mockKeyring) Get(service, user string) (string, error) {
	v, ok := m.entries[service+"/"+user]
	if !ok {
		return "", keyring.ErrNotFound
	}
	return v, nil
}

func (m *mockKeyring) Delete(service, user string) error {
	key := service + "/" + user
	if _, ok := m.entries[key]; !ok {
		return keyring.ErrNotFound
	}
	delete(m.entries, key)
	return nil
}

func Test_SecretStore_save_and_retrieve_round_trip(t *testing.T) {
	store := providerchain.NewSecretStoreProvider("someuser").WithKeyring(newMockKeyring())

	if err := store.Save(&providerchain.AWSCredentials{
		Version:         1,
		AWSAccessKey:    "AKIAEXAMPLE",
		AWSSecretKey:    "secret",
		AWSSessionToken: "token",
	}); err != nil {
		t.Fatalf("got %v, wanted the credential saved", err)
	}

	creds, err := store.Retrieve(context.TODO())
	if err != nil {
		t.Fatalf("got %v, wanted the stored credential back", err)
	}
	if creds.AccessKeyID != "AKIAEXAMPLE" || creds.SecretAccessKey != "secret" || creds.SessionToken != "token" {
		t.Errorf("got %+v, wanted the saved key material", creds)
	}
	if creds.Source != providerchain.SourceSecretStore {
		t.Errorf("got source %q, wanted %s", creds.Source, providerchain.SourceSecretStore)
	}
}

func Test_SecretStore_missing_entry(t *testing.T) {
	store := providerchain.NewSecretStoreProvider("someuser").WithKeyring(newMockKeyring())

	if _, err := store.Retrieve(context.TODO()); !errors.Is(err, providerchain.ErrNoStoredCredential) {
		t.Errorf("got %v, wanted ErrNoStoredCredential", err)
	}
}

func Test_SecretStore_corrupt_entry(t *testing.T) {
	kr := newMockKeyring()
	kr.Set(providerchain.SELF_NAME, "someuser", "not-json")
	store := providerchain.NewSecretStoreProvider("someuser").WithKeyring(kr)

	if _, err := store.Retrieve(context.TODO()); !errors.Is(err, providerchain.ErrUnmarshalSecret) {
		t.Errorf("got %v, wanted ErrUnmarshalSecret", err)
	}
}

func Test_SecretStore_clear_tolerates_missing_entry(t *testing.T) {
	store := providerchain.NewSecretStoreProvider("someuser").WithKeyring(newMockKeyring())

	if err := store.Clear(); err != nil {
		t.Errorf("got %v, wanted nil for clearing an empty store", err)
	}
}
