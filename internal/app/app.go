// Package app wires the AWS clients, stores and domain services for
// the binaries. Both the Lambda entrypoint and the admin server share
// this construction path so they run against identical backends.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/abcretail/retail/blob"
	"github.com/abcretail/retail/fileshare"
	"github.com/abcretail/retail/internal/config"
	"github.com/abcretail/retail/queue"
	"github.com/abcretail/retail/service"
	"github.com/abcretail/retail/store"
)

// Services bundles the constructed domain services.
type Services struct {
	Customers *service.CustomerService
	Products  *service.ProductService
	Orders    *service.OrderService
	Audit     *service.AuditService
	Files     *fileshare.Share
}

// Build constructs the full service graph from the configuration.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Services, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	sqsClient := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	entities := store.New(dynamoClient, store.Config{
		CustomersTable: cfg.CustomersTable,
		ProductsTable:  cfg.ProductsTable,
		OrdersTable:    cfg.OrdersTable,
	})
	blobConfig := blob.Config{Region: cfg.Region, Endpoint: cfg.Endpoint}
	customerPhotos := blob.New(s3Client, cfg.CustomerPhotosBucket, blobConfig)
	productPhotos := blob.New(s3Client, cfg.ProductPhotosBucket, blobConfig)
	auditQueue := queue.New(sqsClient, cfg.AuditQueueURL)

	share, err := fileshare.New(cfg.ShareDir)
	if err != nil {
		return nil, fmt.Errorf("open file share: %w", err)
	}

	return &Services{
		Customers: service.NewCustomerService(entities, customerPhotos, auditQueue, logger),
		Products:  service.NewProductService(entities, productPhotos, auditQueue, logger),
		Orders:    service.NewOrderService(entities, entities, entities, auditQueue, logger),
		Audit:     service.NewAuditService(auditQueue, logger),
		Files:     share,
	}, nil
}
