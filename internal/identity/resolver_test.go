package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	value string
	err   error
	calls int
}

func (f *fakeStore) GetSecret(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.value, f.err
}

func requireConfigUnavailable(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected an oops error, got %T", err)
	assert.Equal(t, CodeConfigUnavailable, oopsErr.Code())
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		poolID     string
		clientID   string
		store      *fakeStore
		want       *PoolConfig
		wantErr    bool
		wantLookup int
	}{
		{
			name:       "environment wins and skips the secret store",
			poolID:     "env-pool",
			clientID:   "env-client",
			store:      &fakeStore{value: `{"USER_POOL_ID":"secret-pool","USER_POOL_CLIENT_ID":"secret-client"}`},
			want:       &PoolConfig{PoolID: "env-pool", ClientID: "env-client"},
			wantLookup: 0,
		},
		{
			name:       "falls back to the secret when both are missing",
			store:      &fakeStore{value: `{"USER_POOL_ID":"secret-pool","USER_POOL_CLIENT_ID":"secret-client"}`},
			want:       &PoolConfig{PoolID: "secret-pool", ClientID: "secret-client"},
			wantLookup: 1,
		},
		{
			name:       "secret fills only the missing value",
			poolID:     "env-pool",
			store:      &fakeStore{value: `{"USER_POOL_ID":"secret-pool","USER_POOL_CLIENT_ID":"secret-client"}`},
			want:       &PoolConfig{PoolID: "env-pool", ClientID: "secret-client"},
			wantLookup: 1,
		},
		{
			name:       "secret lookup fails",
			store:      &fakeStore{err: errors.New("AccessDeniedException")},
			wantErr:    true,
			wantLookup: 1,
		},
		{
			name:       "secret is not JSON",
			store:      &fakeStore{value: "pool=x"},
			wantErr:    true,
			wantLookup: 1,
		},
		{
			name:       "secret lacks a key",
			store:      &fakeStore{value: `{"USER_POOL_ID":"secret-pool"}`},
			wantErr:    true,
			wantLookup: 1,
		},
		{
			name:       "secret key has the wrong type",
			store:      &fakeStore{value: `{"USER_POOL_ID":"secret-pool","USER_POOL_CLIENT_ID":42}`},
			wantErr:    true,
			wantLookup: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resolver{PoolID: tt.poolID, ClientID: tt.clientID, SecretName: "userapp/env-variables", Store: tt.store}

			got, err := r.Resolve(context.Background())
			if tt.wantErr {
				requireConfigUnavailable(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantLookup, tt.store.calls)
		})
	}
}

func TestResolver_NoStore(t *testing.T) {
	r := &Resolver{PoolID: "pool"}
	_, err := r.Resolve(context.Background())
	requireConfigUnavailable(t, err)
}
