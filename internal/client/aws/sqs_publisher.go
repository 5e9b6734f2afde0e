package aws

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
	"github.com/gregsantos/ip-derivative-agent/internal/logger"
)

// SQSPublisher forwards agent events to an SQS queue for downstream consumers.
type SQSPublisher struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSPublisher creates an SQS-backed event publisher for the given queue URL.
func NewSQSPublisher(ctx context.Context, queueURL string) (*SQSPublisher, error) {
	if queueURL == "" {
		return nil, errors.New("SQS queue URL is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load AWS SDK config")
	}

	return &SQSPublisher{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}, nil
}

// Publish serializes the event and sends it to the queue. The event type and ID
// travel as message attributes so consumers can filter without parsing the body.
func (p *SQSPublisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"EventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.Type),
			},
			"EventID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.ID.String()),
			},
		},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to send event %s to SQS", event.ID)
	}

	logger.Log.Debug("Published event to SQS",
		zap.String("eventID", event.ID.String()),
		zap.String("eventType", event.Type),
	)
	return nil
}
