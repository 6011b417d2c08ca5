package handlers

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/cruxstack/cognito-auth-go/internal/config"
	"github.com/cruxstack/cognito-auth-go/internal/identity"
	"github.com/cruxstack/cognito-auth-go/internal/log"
	"github.com/cruxstack/cognito-auth-go/internal/metrics"
	"github.com/cruxstack/cognito-auth-go/internal/secrets"
)

type LoginHandler struct {
	Config   *config.Config
	Resolver PoolResolver
	Provider identity.Provider
	Metrics  metrics.Reporter
}

func NewLoginHandler(ctx context.Context, cfg *config.Config) (*LoginHandler, error) {
	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var reporter metrics.Reporter = metrics.Nop{}
	if cfg.MetricsEnabled {
		reporter = metrics.NewCloudWatchReporter(cfg, awsCfg)
	}

	return &LoginHandler{
		Config:   cfg,
		Resolver: identity.NewResolver(cfg, secrets.NewSecretsManagerStore(awsCfg)),
		Provider: identity.NewCognitoProvider(awsCfg),
		Metrics:  reporter,
	}, nil
}

func (h *LoginHandler) Handle(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logEvent(ctx, h.Config, evt)
	logger := log.FromContext(ctx).With("handler", "login")

	pc, err := h.Resolver.Resolve(ctx)
	if err != nil {
		logger.Error("failed to resolve pool configuration", "error", err)
		return MapError(err), nil
	}

	creds, err := ParseCredentials(evt)
	if err != nil {
		logger.Info("rejected login request", "error", err)
		return MapError(err), nil
	}

	oc := h.Provider.Authenticate(ctx, pc, creds)
	switch oc.Kind {
	case identity.OutcomeSuccess:
		logger.Debug("login succeeded", "email", log.MaskEmail(creds.Email))
	case identity.OutcomeUnknownError:
		logger.Error("login failed", "reason", oc.Kind.String(), "email", log.MaskEmail(creds.Email), "detail", oc.Detail)
		h.Metrics.ReportFailedLogin(ctx, creds.Email, oc.Kind.String())
	default:
		logger.Info("login failed", "reason", oc.Kind.String(), "email", log.MaskEmail(creds.Email))
		h.Metrics.ReportFailedLogin(ctx, creds.Email, oc.Kind.String())
	}

	return MapOutcome(OperationLogin, oc), nil
}
