package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

var ErrEmptySecret = errors.New("secret has no string value")

// Store fetches a named secret blob.
type Store interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// SecretsManagerClient is the subset of the Secrets Manager API used here.
type SecretsManagerClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type SecretsManagerStore struct {
	Client SecretsManagerClient
}

func NewSecretsManagerStore(awsCfg aws.Config) *SecretsManagerStore {
	return &SecretsManagerStore{Client: secretsmanager.NewFromConfig(awsCfg)}
}

func (s *SecretsManagerStore) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := s.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("secretsmanager get %q: %w", name, err)
	}
	if out == nil || out.SecretString == nil {
		return "", ErrEmptySecret
	}
	return aws.ToString(out.SecretString), nil
}
