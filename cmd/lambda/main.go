package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	awsclient "tasnim.dev/iam-audit/internal/aws"
	"tasnim.dev/iam-audit/internal/config"
	"tasnim.dev/iam-audit/internal/handler"
	"tasnim.dev/iam-audit/internal/logging"
)

func main() {
	cfg, err := config.LoadLambda()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logging.NewConsole(cfg.LogLevel, "lambda")
	defer logger.Sync()

	// Clients are built once per cold start and reused across invocations.
	client, err := awsclient.NewServiceClient(context.Background(), "", cfg.Region)
	if err != nil {
		logger.Fatal("initializing AWS client", zap.Error(err))
	}

	h := handler.NewCollector(client.IAM, logger,
		handler.WithUpload(client.S3, cfg.ReportBucket, cfg.ReportPrefix),
		handler.WithAccountID(client.AccountID))

	lambda.Start(h.Handle)
}
