package cliparse

import (
	"errors"
	"flag"
	"os"
	"regexp"
	"strconv"
)

var dateRegex = regexp.MustCompile(`^(19|20)\d{2}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)

type Config struct {
	Port int

	// AWS / storage
	AWSRegion      string
	DynamoEndpoint string // set for dynamodb-local, empty in production
	AccessKeyID    string // static credentials, only for local development
	SecretKey      string

	QuestionsTable     string
	QuestionDatesTable string
	UsersTable         string
	QuestionIDIndex    string

	// Listing behavior
	MaxQueryLimit    int
	DatasetStartDate string // YYYY-MM-DD, earliest day date listings walk back to

	// Auth
	JWKSURL string

	// Avatars
	AvatarBucket         string
	URLExpirationSeconds int
}

// ParseFlags validates flags with environment fallback
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("rather", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.AWSRegion, "region", "", "AWS region")
	fs.StringVar(&cfg.DynamoEndpoint, "dynamo-endpoint", "", "DynamoDB endpoint override (local dev)")

	// Table layout
	fs.StringVar(&cfg.QuestionsTable, "questions-table", "", "Questions table name")
	fs.StringVar(&cfg.QuestionDatesTable, "question-dates-table", "", "Question date records table name")
	fs.StringVar(&cfg.UsersTable, "users-table", "", "Users table name")
	fs.StringVar(&cfg.QuestionIDIndex, "question-id-index", "", "questionId secondary index name")

	// Listing behavior
	fs.IntVar(&cfg.MaxQueryLimit, "max-limit", 0, "Maximum page size for date listings")
	fs.StringVar(&cfg.DatasetStartDate, "dataset-start", "", "Earliest date listings walk back to (YYYY-MM-DD)")

	// Auth and avatars
	fs.StringVar(&cfg.JWKSURL, "jwks-url", "", "Identity provider JWKS URL")
	fs.StringVar(&cfg.AvatarBucket, "avatar-bucket", "", "S3 bucket for avatar uploads")
	fs.IntVar(&cfg.URLExpirationSeconds, "url-expiration", 0, "Presigned URL lifetime in seconds")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}

	if cfg.AWSRegion == "" {
		cfg.AWSRegion = os.Getenv("AWS_REGION")
		if cfg.AWSRegion == "" {
			cfg.AWSRegion = "us-east-1"
		}
	}
	if cfg.DynamoEndpoint == "" {
		cfg.DynamoEndpoint = os.Getenv("DYNAMO_ENDPOINT")
	}
	// Static credentials only make sense against a local endpoint; the real
	// service uses the default provider chain.
	cfg.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.SecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if cfg.QuestionsTable == "" {
		cfg.QuestionsTable = envOr("QUESTIONS_TABLE", "questions")
	}
	if cfg.QuestionDatesTable == "" {
		cfg.QuestionDatesTable = envOr("QUESTION_DATES_TABLE", "question-dates")
	}
	if cfg.UsersTable == "" {
		cfg.UsersTable = envOr("USERS_TABLE", "users")
	}
	if cfg.QuestionIDIndex == "" {
		cfg.QuestionIDIndex = envOr("QUESTION_ID_INDEX", "questionIdIndex")
	}

	if cfg.MaxQueryLimit == 0 {
		if limitStr := os.Getenv("MAX_QUERY_LIMIT"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit <= 0 {
				return Config{}, errors.New("invalid MAX_QUERY_LIMIT env variable")
			}
			cfg.MaxQueryLimit = limit
		} else {
			cfg.MaxQueryLimit = 20
		}
	}

	// Dataset start - MUST be provided, it bounds the listing walk
	if cfg.DatasetStartDate == "" {
		cfg.DatasetStartDate = os.Getenv("DATASET_START_DATE")
	}
	if cfg.DatasetStartDate == "" {
		return Config{}, errors.New("DATASET_START_DATE required")
	}
	if !dateRegex.MatchString(cfg.DatasetStartDate) {
		return Config{}, errors.New("DATASET_START_DATE must be YYYY-MM-DD")
	}

	if cfg.JWKSURL == "" {
		cfg.JWKSURL = os.Getenv("JWKS_URL")
	}
	if cfg.JWKSURL == "" {
		return Config{}, errors.New("JWKS_URL required")
	}

	if cfg.AvatarBucket == "" {
		cfg.AvatarBucket = envOr("AVATAR_BUCKET", "rather-avatars")
	}
	if cfg.URLExpirationSeconds == 0 {
		if expStr := os.Getenv("URL_EXPIRATION_SECONDS"); expStr != "" {
			exp, err := strconv.Atoi(expStr)
			if err != nil || exp <= 0 {
				return Config{}, errors.New("invalid URL_EXPIRATION_SECONDS env variable")
			}
			cfg.URLExpirationSeconds = exp
		} else {
			cfg.URLExpirationSeconds = 300
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
