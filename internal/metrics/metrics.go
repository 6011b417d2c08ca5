package metrics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/cruxstack/cognito-auth-go/internal/config"
	"github.com/cruxstack/cognito-auth-go/internal/log"
)

const MetricFailedLogin = "FailedLogin"

// Reporter records failed logins. Implementations never fail the caller.
type Reporter interface {
	ReportFailedLogin(ctx context.Context, email, reason string)
}

// CloudWatchClient is the subset of the CloudWatch API used here.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

type CloudWatchReporter struct {
	Client    CloudWatchClient
	Namespace string
	HashEmail bool
}

func NewCloudWatchReporter(cfg *config.Config, awsCfg aws.Config) *CloudWatchReporter {
	return &CloudWatchReporter{
		Client:    cloudwatch.NewFromConfig(awsCfg),
		Namespace: cfg.MetricsNamespace,
		HashEmail: cfg.MetricsHashEmail,
	}
}

func (r *CloudWatchReporter) ReportFailedLogin(ctx context.Context, email, reason string) {
	user := email
	if r.HashEmail {
		sum := sha256.Sum256([]byte(email))
		user = hex.EncodeToString(sum[:])
	}

	_, err := r.Client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(r.Namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(MetricFailedLogin),
				Unit:       types.StandardUnitCount,
				Value:      aws.Float64(1),
				Dimensions: []types.Dimension{
					{Name: aws.String("Reason"), Value: aws.String(reason)},
					{Name: aws.String("Email"), Value: aws.String(user)},
				},
			},
		},
	})
	if err != nil {
		log.FromContext(ctx).Warn("failed to emit login failure metric",
			"reason", reason, "email", log.MaskEmail(email), "error", err)
	}
}

// Nop discards every report.
type Nop struct{}

func (Nop) ReportFailedLogin(context.Context, string, string) {}
