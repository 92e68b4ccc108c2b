package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// SESConfig holds the configuration for the SES sender.
type SESConfig struct {
	Region string
	// Static credentials; when empty the default AWS credential chain is used
	AccessKeyID     string
	SecretAccessKey string
}

// sesAPI is the subset of the SES v2 client used by SESSender
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESSender implements Sender using AWS SES v2.
type SESSender struct {
	client sesAPI
}

// NewSESSender creates a new SESSender.
func NewSESSender(ctx context.Context, cfg SESConfig) (*SESSender, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ses: failed to load AWS config: %w", err)
	}

	return &SESSender{client: sesv2.NewFromConfig(awsCfg)}, nil
}

// Name implements Sender.
func (s *SESSender) Name() string { return "ses" }

// Deliver implements Sender.
func (s *SESSender) Deliver(ctx context.Context, msg Message) DeliveryResult {
	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		to[i] = addr.String()
	}

	body := &types.Body{}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")}
	}
	if msg.TextBody != "" {
		body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From.String()),
		Destination:      &types.Destination{ToAddresses: to},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	}
	if msg.ReplyTo != nil {
		input.ReplyToAddresses = []string{msg.ReplyTo.String()}
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return sesFailure(err)
	}

	raw, _ := json.Marshal(map[string]string{"MessageId": aws.ToString(out.MessageId)})
	return DeliveryResult{
		Success:     true,
		StatusCode:  http.StatusOK,
		RawResponse: raw,
	}
}

// sesFailure keeps the HTTP status and API error details when SES answered,
// and reports a transport failure otherwise.
func sesFailure(err error) DeliveryResult {
	var respErr *smithyhttp.ResponseError
	if !errors.As(err, &respErr) {
		return transportFailure(fmt.Errorf("ses: %w", err))
	}

	payload := map[string]string{"message": err.Error()}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		payload["code"] = apiErr.ErrorCode()
		payload["message"] = apiErr.ErrorMessage()
	}
	raw, _ := json.Marshal(payload)

	return DeliveryResult{
		Success:     false,
		StatusCode:  respErr.HTTPStatusCode(),
		RawResponse: raw,
	}
}
