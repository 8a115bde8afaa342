package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSecretsAPI struct {
	values map[string]string
	calls  int
}

func (f *fakeSecretsAPI) GetSecret(_ context.Context, name, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	f.calls++
	v, ok := f.values[name]
	if !ok {
		return azsecrets.GetSecretResponse{}, errors.New("SecretNotFound")
	}
	var resp azsecrets.GetSecretResponse
	resp.Value = &v
	return resp, nil
}

func TestVaultClient_CachesUntilExpiry(t *testing.T) {
	api := &fakeSecretsAPI{values: map[string]string{"crm-jwt-secret": "s3cret"}}
	client := newVaultClient(api, &VaultConfig{CacheEnabled: true, CacheTTL: time.Minute}, zap.NewNop())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		v, err := client.GetSecret(context.Background(), "crm-jwt-secret")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", v)
	}
	assert.Equal(t, 1, api.calls)

	now = now.Add(2 * time.Minute)
	_, err := client.GetSecret(context.Background(), "crm-jwt-secret")
	require.NoError(t, err)
	assert.Equal(t, 2, api.calls)

	client.ClearCache()
	_, err = client.GetSecret(context.Background(), "crm-jwt-secret")
	require.NoError(t, err)
	assert.Equal(t, 3, api.calls)
}

func TestVaultClient_MissingSecret(t *testing.T) {
	client := newVaultClient(&fakeSecretsAPI{}, &VaultConfig{}, zap.NewNop())

	_, err := client.GetSecret(context.Background(), "admin-api-key")
	assert.ErrorContains(t, err, "admin-api-key")
}

func TestProvider_EnvOverridesVault(t *testing.T) {
	api := &fakeSecretsAPI{values: map[string]string{"admin-api-key": "from-vault"}}
	p := NewProviderWithGetter(newVaultClient(api, &VaultConfig{}, zap.NewNop()), zap.NewNop())

	v, err := p.GetSecretOrEnv(context.Background(), "admin-api-key", "CRM_TEST_ADMIN_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-vault", v)

	t.Setenv("CRM_TEST_ADMIN_API_KEY", "from-env")
	v, err = p.GetSecretOrEnv(context.Background(), "admin-api-key", "CRM_TEST_ADMIN_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)
	assert.True(t, p.IsVaultEnabled())
}

func TestProvider_EnvironmentSource(t *testing.T) {
	p, err := NewProvider(&ProviderConfig{Source: SourceAuto, Environment: "development"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, p.Source())

	_, err = p.GetSecret(context.Background(), "CRM_TEST_UNSET_SECRET")
	assert.Error(t, err)

	t.Setenv("CRM_TEST_SET_SECRET", "value")
	v, err := p.GetSecret(context.Background(), "CRM_TEST_SET_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "value", v)
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, ""))
	assert.Equal(t, SourceVault, ResolveSource(SourceAuto, "production"))
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceEnvironment, "production"))
}
