// Package notify implements the user service's Notifier port.
//
// Two adapters are provided: SESNotifier delivers real mail through AWS
// SES v2, LogNotifier only logs and is the default when SES is not
// configured. Delivery policy (timeouts, retries) belongs to the AWS SDK
// configuration here, never to the service layer.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	appconfig "github.com/ignite/userhub/internal/config"
	"github.com/ignite/userhub/internal/domain"
	"github.com/ignite/userhub/internal/pkg/logger"
)

const welcomeSubject = "Welcome to the user directory"

// SESNotifier sends welcome and promotional mail through AWS SES v2.
type SESNotifier struct {
	client *sesv2.Client
	from   string
}

// NewSESNotifier creates an SES-backed notifier from static credentials.
func NewSESNotifier(ctx context.Context, cfg appconfig.SESConfig) (*SESNotifier, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	return &SESNotifier{
		client: sesv2.NewFromConfig(awsCfg),
		from:   from,
	}, nil
}

func (n *SESNotifier) SendWelcome(ctx context.Context, u *domain.User) error {
	body := fmt.Sprintf("Hi %s,\n\nYour account has been created.\n", u.Name)
	return n.send(ctx, u.Email.String(), welcomeSubject, body)
}

func (n *SESNotifier) SendPromotional(ctx context.Context, u *domain.User, content string) error {
	return n.send(ctx, u.Email.String(), "An offer for you", content)
}

func (n *SESNotifier) send(ctx context.Context, to, subject, body string) error {
	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", logger.RedactEmail(to), err)
	}
	logger.Debug("email sent", "recipient", to, "subject", subject)
	return nil
}
