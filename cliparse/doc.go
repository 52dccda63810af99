// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - AWSRegion: AWS region (default: us-east-1)
  - DynamoEndpoint: DynamoDB endpoint override for local development
  - QuestionsTable, QuestionDatesTable, UsersTable: table names
  - QuestionIDIndex: name of the questionId secondary index
  - MaxQueryLimit: cap on date-listing page size (default: 20)
  - DatasetStartDate: earliest day date listings walk back to (required)
  - JWKSURL: identity provider JWKS document URL (required)
  - AvatarBucket: S3 bucket for avatar uploads
  - URLExpirationSeconds: presigned URL lifetime (default: 300)

# Environment Variables

Flags fall back to environment variables:

	PORT                   → -p
	AWS_REGION             → -region
	DYNAMO_ENDPOINT        → -dynamo-endpoint
	QUESTIONS_TABLE        → -questions-table
	QUESTION_DATES_TABLE   → -question-dates-table
	USERS_TABLE            → -users-table
	QUESTION_ID_INDEX      → -question-id-index
	MAX_QUERY_LIMIT        → -max-limit
	DATASET_START_DATE     → -dataset-start
	JWKS_URL               → -jwks-url
	AVATAR_BUCKET          → -avatar-bucket
	URL_EXPIRATION_SECONDS → -url-expiration

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATASET_START_DATE must be provided and match YYYY-MM-DD
  - JWKS_URL must be provided

DatasetStartDate is required rather than defaulted because it bounds the
backward walk of date listings; an accidental empty value would let a
listing walk arbitrarily far into the past.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package cliparse
