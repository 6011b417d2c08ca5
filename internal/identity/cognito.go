package identity

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

// Provider delegates authentication and sign-up to the identity service.
// Provider failures are reported through the Outcome, never as Go errors.
type Provider interface {
	Authenticate(ctx context.Context, pc *PoolConfig, creds Credentials) Outcome
	Register(ctx context.Context, pc *PoolConfig, creds Credentials) Outcome
}

// CognitoClient is the subset of the Cognito user pools API used here.
type CognitoClient interface {
	AdminInitiateAuth(ctx context.Context, params *cognito.AdminInitiateAuthInput, optFns ...func(*cognito.Options)) (*cognito.AdminInitiateAuthOutput, error)
	SignUp(ctx context.Context, params *cognito.SignUpInput, optFns ...func(*cognito.Options)) (*cognito.SignUpOutput, error)
}

type CognitoProvider struct {
	Client CognitoClient
}

func NewCognitoProvider(awsCfg aws.Config) *CognitoProvider {
	return &CognitoProvider{Client: cognito.NewFromConfig(awsCfg)}
}

func (p *CognitoProvider) Authenticate(ctx context.Context, pc *PoolConfig, creds Credentials) Outcome {
	out, err := p.Client.AdminInitiateAuth(ctx, &cognito.AdminInitiateAuthInput{
		AuthFlow:   types.AuthFlowTypeAdminUserPasswordAuth,
		UserPoolId: aws.String(pc.PoolID),
		ClientId:   aws.String(pc.ClientID),
		AuthParameters: map[string]string{
			"USERNAME": creds.Email,
			"PASSWORD": creds.Password,
		},
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		var notFound *types.UserNotFoundException
		var notConfirmed *types.UserNotConfirmedException
		switch {
		case errors.As(err, &notAuthorized), errors.As(err, &notFound):
			return Outcome{Kind: OutcomeInvalidCredentials}
		case errors.As(err, &notConfirmed):
			return Outcome{Kind: OutcomeUserNotConfirmed}
		default:
			return Unknown(errorDetail(err))
		}
	}

	if out == nil || out.AuthenticationResult == nil {
		if out != nil && out.ChallengeName != "" {
			return Unknown("authentication requires challenge " + string(out.ChallengeName))
		}
		return Unknown("authentication returned no result")
	}

	ar := out.AuthenticationResult
	return Outcome{
		Kind: OutcomeSuccess,
		Tokens: &Tokens{
			AccessToken:  aws.ToString(ar.AccessToken),
			IDToken:      aws.ToString(ar.IdToken),
			RefreshToken: aws.ToString(ar.RefreshToken),
			ExpiresIn:    ar.ExpiresIn,
			TokenType:    aws.ToString(ar.TokenType),
		},
	}
}

func (p *CognitoProvider) Register(ctx context.Context, pc *PoolConfig, creds Credentials) Outcome {
	out, err := p.Client.SignUp(ctx, &cognito.SignUpInput{
		ClientId: aws.String(pc.ClientID),
		Username: aws.String(creds.Email),
		Password: aws.String(creds.Password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(creds.Email)},
		},
	})
	if err != nil {
		var exists *types.UsernameExistsException
		if errors.As(err, &exists) {
			return Outcome{Kind: OutcomeUserAlreadyExists}
		}
		return Unknown(errorDetail(err))
	}

	oc := Outcome{Kind: OutcomeSuccess}
	if out != nil {
		oc.UserConfirmed = out.UserConfirmed
	}
	return oc
}

// errorDetail prefers the service's own message over the SDK's wrapped
// operation error text.
func errorDetail(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}
