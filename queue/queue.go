// Package queue appends audit log entries to an SQS queue and reads them
// back non-destructively.
//
// Entries are serialized to JSON and then base64-encoded before being
// enqueued, matching the wire format of the deployed queue so existing
// consumers keep working. Reads never dequeue: messages are received with
// a zero visibility timeout so they stay available to other readers and
// roll off under the queue's own retention.
package queue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/abcretail/retail/model"
)

// DefaultPeekLimit bounds how many entries a peek returns.
const DefaultPeekLimit = 30

// sqsReceiveBatchMax is the per-call cap imposed by SQS.
const sqsReceiveBatchMax = 10

// SQSAPI is the subset of the SQS client the queue depends on.
// *sqs.Client satisfies it.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
}

// Queue is an append-only audit log backed by SQS.
type Queue struct {
	client   SQSAPI
	queueURL string
}

// New creates a Queue for the given queue URL.
func New(client SQSAPI, queueURL string) *Queue {
	return &Queue{
		client:   client,
		queueURL: queueURL,
	}
}

// Append serializes the message to JSON, base64-encodes it and enqueues
// it as a single opaque text message.
func (q *Queue) Append(ctx context.Context, message any) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(payload)

	_, err = q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(encoded),
	})
	if err != nil {
		return fmt.Errorf("enqueue audit entry: %w", err)
	}
	return nil
}

// PeekRecent reads up to max of the oldest available entries without
// removing them. A max of 0 or less uses DefaultPeekLimit.
func (q *Queue) PeekRecent(ctx context.Context, max int) ([]model.AuditLog, error) {
	if max <= 0 {
		max = DefaultPeekLimit
	}

	var entries []model.AuditLog
	seen := make(map[string]bool)
	for len(entries) < max {
		batch := max - len(entries)
		if batch > sqsReceiveBatchMax {
			batch = sqsReceiveBatchMax
		}

		result, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(q.queueURL),
			MaxNumberOfMessages: int32(batch),
			// Zero visibility timeout keeps the messages available: this
			// is a peek, not a dequeue.
			VisibilityTimeout: 0,
			MessageSystemAttributeNames: []sqstypes.MessageSystemAttributeName{
				sqstypes.MessageSystemAttributeNameSentTimestamp,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("peek audit entries: %w", err)
		}

		// Messages stay visible, so a batch can repeat earlier ones.
		// Stop once a receive yields nothing new.
		fresh := 0
		for _, msg := range result.Messages {
			id := aws.ToString(msg.MessageId)
			if seen[id] {
				continue
			}
			seen[id] = true
			fresh++
			entries = append(entries, decodeMessage(msg))
			if len(entries) == max {
				break
			}
		}
		if fresh == 0 {
			break
		}
	}

	return entries, nil
}

// decodeMessage turns a raw queue message into an audit log entry,
// reversing the base64 layer. A body that is not valid base64 is
// surfaced verbatim.
func decodeMessage(msg sqstypes.Message) model.AuditLog {
	entry := model.AuditLog{
		MessageID:   aws.ToString(msg.MessageId),
		MessageText: aws.ToString(msg.Body),
	}

	if decoded, err := base64.StdEncoding.DecodeString(entry.MessageText); err == nil {
		entry.MessageText = string(decoded)
	}

	if ts, ok := msg.Attributes[string(sqstypes.MessageSystemAttributeNameSentTimestamp)]; ok {
		if millis, err := strconv.ParseInt(ts, 10, 64); err == nil {
			entry.InsertionTime = time.UnixMilli(millis).UTC()
		}
	}

	return entry
}
