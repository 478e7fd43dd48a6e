package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/insurancepro-api/internal/config"
	"github.com/insurancepro-api/internal/infrastructure/awsinfra"
	"github.com/insurancepro-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/insurancepro-api/internal/infrastructure/jwt"
	"github.com/insurancepro-api/internal/infrastructure/mail"
	s3infra "github.com/insurancepro-api/internal/infrastructure/s3"
	"github.com/insurancepro-api/internal/infrastructure/sns"
	"github.com/insurancepro-api/internal/infrastructure/stripe"
	transporthttp "github.com/insurancepro-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	awsCfg, err := awsinfra.LoadConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("aws config: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	s3Store := s3infra.NewStore(s3infra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.S3BucketName)

	publisher := sns.NewPublisher(awsCfg, cfg.AWSEndpointURL, cfg.SNSTopicARN)
	if publisher == nil {
		log.Println("WARN: SNS_TOPIC_ARN not set, notification fan-out disabled")
	}

	if cfg.StripeSecretKey == "" {
		log.Println("WARN: STRIPE_SECRET_KEY not set, payment calls will be rejected by the processor")
	}

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		PolicyRepo:       dynamo.NewPolicyRepo(dynamoClient, cfg.DynamoTables.Policies),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		CounterRepo:      dynamo.NewCounterRepo(dynamoClient, cfg.DynamoTables.Counters),
		Documents:        s3Store,
		Publisher:        publisher,
		Payments:         stripe.NewClient(cfg.StripeBaseURL, cfg.StripeSecretKey),
		Mailer:           mail.NewMailer(cfg),
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
