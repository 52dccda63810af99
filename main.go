package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/rather/auth"
	"github.com/danielhkuo/rather/cliparse"
	"github.com/danielhkuo/rather/handlers"
	"github.com/danielhkuo/rather/middleware"
	"github.com/danielhkuo/rather/repository"
	"github.com/danielhkuo/rather/router"
	"github.com/danielhkuo/rather/service"
	"github.com/danielhkuo/rather/store"
)

func main() {
	ctx := context.Background()

	// Local development keeps settings in a .env file; absence is fine
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Build the AWS client config. A local DynamoDB endpoint pairs with
	// static credentials; production uses the default provider chain.
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.DynamoEndpoint != "" && cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		slog.Error("AWS config failed", "error", err)
		os.Exit(1)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	})

	tables := store.Tables{
		Questions:       cfg.QuestionsTable,
		QuestionDates:   cfg.QuestionDatesTable,
		Users:           cfg.UsersTable,
		QuestionIDIndex: cfg.QuestionIDIndex,
	}
	if err := store.EnsureTables(ctx, dynamoClient, tables); err != nil {
		slog.Error("table setup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Tables ready",
		"questions", cfg.QuestionsTable,
		"question_dates", cfg.QuestionDatesTable,
		"users", cfg.UsersTable,
	)

	// Wire repositories and services
	st := store.NewDynamo(dynamoClient)
	questionRepo := repository.NewQuestionRepository(st, cfg.QuestionsTable, cfg.QuestionIDIndex)
	dateRepo := repository.NewDateRecordRepository(st, cfg.QuestionDatesTable)
	userRepo := repository.NewUserRepository(st, cfg.UsersTable)

	questionService := service.NewQuestionService(questionRepo, dateRepo, cfg.MaxQueryLimit, cfg.DatasetStartDate)
	userService := service.NewUserService(userRepo)

	verifier := auth.NewVerifier(cfg.JWKSURL)
	presigner := s3.NewPresignClient(s3.NewFromConfig(awsCfg))

	// Create router
	mux := router.NewRouter(
		handlers.NewQuestionHandler(questionService),
		handlers.NewUserHandler(userService),
		handlers.NewAvatarHandler(userService, presigner, cfg),
		verifier,
	)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
