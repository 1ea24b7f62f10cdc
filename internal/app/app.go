// Package app wires configuration, logging and the AWS clients into the
// Lambda handler. Clients are constructed once at cold start and passed by
// reference into each request's handler; nothing is resolved ad hoc per
// invocation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"github.com/dionysus-app/user-api/internal/config"
	"github.com/dionysus-app/user-api/internal/identity"
	"github.com/dionysus-app/user-api/internal/logging"
	"github.com/dionysus-app/user-api/internal/router"
	"github.com/dionysus-app/user-api/internal/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	router *router.Router
}

func NewApp(ctx context.Context) (*App, error) {

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("config load error: %w", err)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	logger.Info(ctx, "initializing AWS clients",
		"table", cfg.UserTable,
		"cognito_region", cfg.CognitoRegion,
		"user_pool_id", cfg.CognitoUserPoolID)

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	db := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})
	cognito := cognitoidentityprovider.NewFromConfig(awsCfg, func(o *cognitoidentityprovider.Options) {
		o.Region = cfg.CognitoRegion
	})

	repo := users.NewDynamoDBRepository(db, cfg.UserTable)
	directory := identity.NewCognitoDirectory(cognito, cfg.CognitoUserPoolID)

	return &App{
		config: cfg,
		logger: logger,
		router: router.New(repo, directory),
	}, nil
}

func loadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.EndpointURL != "" && cfg.AccessKeyID != "" {
		// Local development: DynamoDB Local with static credentials.
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// Handle processes one API Gateway proxy event. It never returns an error:
// every failure is mapped to a (status, body) response by the router.
func (a *App) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {

	log := a.logger.With("request_id", requestID(ctx))
	log.Info(ctx, "handling request", "method", req.HTTPMethod, "path", req.Path)

	resp := a.router.Dispatch(ctx, log, req)

	log.Info(ctx, "request complete", "status", resp.StatusCode)
	return resp, nil
}

// requestID prefers the Lambda invocation ID; outside the Lambda runtime
// (local invocations, tests) it falls back to a generated one.
func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
