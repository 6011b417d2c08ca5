package handlers

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/cruxstack/cognito-auth-go/internal/config"
	"github.com/cruxstack/cognito-auth-go/internal/identity"
	"github.com/cruxstack/cognito-auth-go/internal/log"
	"github.com/cruxstack/cognito-auth-go/internal/secrets"
)

type RegisterHandler struct {
	Config   *config.Config
	Resolver PoolResolver
	Provider identity.Provider
}

func NewRegisterHandler(ctx context.Context, cfg *config.Config) (*RegisterHandler, error) {
	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &RegisterHandler{
		Config:   cfg,
		Resolver: identity.NewResolver(cfg, secrets.NewSecretsManagerStore(awsCfg)),
		Provider: identity.NewCognitoProvider(awsCfg),
	}, nil
}

func (h *RegisterHandler) Handle(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logEvent(ctx, h.Config, evt)
	logger := log.FromContext(ctx).With("handler", "register")

	pc, err := h.Resolver.Resolve(ctx)
	if err != nil {
		logger.Error("failed to resolve pool configuration", "error", err)
		return MapError(err), nil
	}

	creds, err := ParseCredentials(evt)
	if err != nil {
		logger.Info("rejected registration request", "error", err)
		return MapError(err), nil
	}

	oc := h.Provider.Register(ctx, pc, creds)
	switch oc.Kind {
	case identity.OutcomeSuccess:
		logger.Info("user registered", "email", log.MaskEmail(creds.Email), "confirmed", oc.UserConfirmed)
	case identity.OutcomeUnknownError:
		logger.Error("registration failed", "email", log.MaskEmail(creds.Email), "detail", oc.Detail)
	default:
		logger.Info("registration rejected", "reason", oc.Kind.String(), "email", log.MaskEmail(creds.Email))
	}

	return MapOutcome(OperationRegister, oc), nil
}
