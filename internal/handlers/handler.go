package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/cruxstack/cognito-auth-go/internal/config"
	"github.com/cruxstack/cognito-auth-go/internal/identity"
	"github.com/cruxstack/cognito-auth-go/internal/log"
	"github.com/samber/oops"
)

const (
	CodeMalformedBody = "MALFORMED_BODY"
	CodeMissingFields = "MISSING_FIELDS"
)

const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserNotConfirmed   = "User not confirmed"
	MsgUserAlreadyExists  = "User already exists"
	MsgInvalidJSON        = "Invalid JSON format"
	MsgMissingFields      = "Email and password are required"
	MsgRegistered         = "User registered successfully"
	MsgInternal           = "Internal server error"
)

// Operation selects the success body produced for a GatewayOutcome.
type Operation int

const (
	OperationLogin Operation = iota
	OperationRegister
)

type Handler interface {
	Handle(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

// PoolResolver yields the pool and client identifiers for a request.
type PoolResolver interface {
	Resolve(ctx context.Context) (*identity.PoolConfig, error)
}

type MessageBody struct {
	Message string `json:"message"`
}

// ParseCredentials decodes the request body and requires a non-empty email
// and password. Values are passed through untouched.
func ParseCredentials(evt events.APIGatewayProxyRequest) (identity.Credentials, error) {
	var creds identity.Credentials

	body := []byte(evt.Body)
	if evt.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(evt.Body)
		if err != nil {
			return creds, oops.Code(CodeMalformedBody).In("request").Wrapf(err, "body is not valid base64")
		}
		body = decoded
	}

	if err := json.Unmarshal(body, &creds); err != nil {
		return creds, oops.Code(CodeMalformedBody).In("request").Wrapf(err, "body is not valid JSON")
	}

	if creds.Email == "" || creds.Password == "" {
		return creds, oops.Code(CodeMissingFields).In("request").
			With("has_email", creds.Email != "", "has_password", creds.Password != "").
			Errorf("email and password are required")
	}
	return creds, nil
}

// MapOutcome converts a provider outcome into the response returned to the
// caller. It is total over identity.OutcomeKind.
func MapOutcome(op Operation, oc identity.Outcome) events.APIGatewayProxyResponse {
	switch oc.Kind {
	case identity.OutcomeSuccess:
		if op == OperationRegister {
			return jsonResponse(http.StatusCreated, MessageBody{Message: MsgRegistered})
		}
		if oc.Tokens == nil {
			return jsonResponse(http.StatusInternalServerError, MessageBody{Message: "authentication returned no tokens"})
		}
		return jsonResponse(http.StatusOK, oc.Tokens)
	case identity.OutcomeInvalidCredentials:
		return jsonResponse(http.StatusUnauthorized, MessageBody{Message: MsgInvalidCredentials})
	case identity.OutcomeUserNotConfirmed:
		return jsonResponse(http.StatusForbidden, MessageBody{Message: MsgUserNotConfirmed})
	case identity.OutcomeUserAlreadyExists:
		return jsonResponse(http.StatusConflict, MessageBody{Message: MsgUserAlreadyExists})
	default:
		msg := oc.Detail
		if msg == "" {
			msg = MsgInternal
		}
		return jsonResponse(http.StatusInternalServerError, MessageBody{Message: msg})
	}
}

// MapError converts a local validation or configuration failure into a
// response.
func MapError(err error) events.APIGatewayProxyResponse {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return jsonResponse(http.StatusInternalServerError, MessageBody{Message: MsgInternal})
	}

	switch oopsErr.Code() {
	case CodeMalformedBody:
		return jsonResponse(http.StatusBadRequest, MessageBody{Message: MsgInvalidJSON})
	case CodeMissingFields:
		return jsonResponse(http.StatusBadRequest, MessageBody{Message: MsgMissingFields})
	case identity.CodeConfigUnavailable:
		source := "environment"
		if id, ok := oopsErr.Context()["secret_id"]; ok {
			source = fmt.Sprintf("secret %v", id)
		}
		return jsonResponse(http.StatusInternalServerError, MessageBody{
			Message: "Configuration unavailable: could not read user pool settings from " + source,
		})
	default:
		return jsonResponse(http.StatusInternalServerError, MessageBody{Message: MsgInternal})
	}
}

func jsonResponse(status int, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"message":"` + MsgInternal + `"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

// logEvent writes the triggering event at debug level with the body left out.
func logEvent(ctx context.Context, cfg *config.Config, evt events.APIGatewayProxyRequest) {
	if !cfg.DebugEnabled {
		return
	}
	redacted := evt
	redacted.Body = fmt.Sprintf("[redacted %d bytes]", len(evt.Body))
	evtJSON, err := json.Marshal(redacted)
	if err != nil {
		log.FromContext(ctx).Warn("failed to marshal triggered event", "error", err)
		return
	}
	log.FromContext(ctx).Debug(string(evtJSON))
}

func newAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}
