package identity

import (
	"context"
	"encoding/json"

	"github.com/cruxstack/cognito-auth-go/internal/config"
	"github.com/cruxstack/cognito-auth-go/internal/log"
	"github.com/cruxstack/cognito-auth-go/internal/secrets"
	"github.com/samber/oops"
)

const CodeConfigUnavailable = "CONFIG_UNAVAILABLE"

const (
	secretKeyPoolID   = "USER_POOL_ID"
	secretKeyClientID = "USER_POOL_CLIENT_ID"
)

// PoolConfig scopes a provider call to a user pool and an app client.
type PoolConfig struct {
	PoolID   string
	ClientID string
}

// Resolver prefers identifiers from the environment and falls back to a
// single secret store read when either is missing.
type Resolver struct {
	PoolID     string
	ClientID   string
	SecretName string
	Store      secrets.Store
}

func NewResolver(cfg *config.Config, store secrets.Store) *Resolver {
	return &Resolver{
		PoolID:     cfg.UserPoolID,
		ClientID:   cfg.UserPoolClientID,
		SecretName: cfg.SecretName,
		Store:      store,
	}
}

func (r *Resolver) Resolve(ctx context.Context) (*PoolConfig, error) {
	pc := &PoolConfig{PoolID: r.PoolID, ClientID: r.ClientID}
	if pc.PoolID != "" && pc.ClientID != "" {
		return pc, nil
	}

	errb := oops.Code(CodeConfigUnavailable).In("config").With("secret_id", r.SecretName)
	if r.Store == nil {
		return nil, errb.Errorf("pool configuration missing from environment and no secret store configured")
	}

	log.FromContext(ctx).Debug("reading pool configuration from secret store", "secret_id", r.SecretName)
	raw, err := r.Store.GetSecret(ctx, r.SecretName)
	if err != nil {
		return nil, errb.Wrapf(err, "could not read secret %s", r.SecretName)
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, errb.Wrapf(err, "secret %s is not a JSON object", r.SecretName)
	}

	if pc.PoolID == "" {
		pc.PoolID = stringValue(values, secretKeyPoolID)
	}
	if pc.ClientID == "" {
		pc.ClientID = stringValue(values, secretKeyClientID)
	}

	if pc.PoolID == "" || pc.ClientID == "" {
		return nil, errb.Errorf("secret %s is missing %s or %s", r.SecretName, secretKeyPoolID, secretKeyClientID)
	}
	return pc, nil
}

func stringValue(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
