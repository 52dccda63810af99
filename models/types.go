// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Vote target constants. Matching is case-insensitive with surrounding
// whitespace trimmed, see service.CastVote.
const (
	TargetOptionOne = "optionone"
	TargetOptionTwo = "optiontwo"
	TargetRemove    = "remove"
)

// Request types

type CreateQuestionRequest struct {
	OptionOneText string `json:"optionOneText"`
	OptionTwoText string `json:"optionTwoText"`
}

type CastVoteRequest struct {
	Option string `json:"option"`
}

type CreateUserRequest struct {
	Name string `json:"name"`
}

type UpdateUserRequest struct {
	Name string `json:"name"`
}

type BatchGetUsersRequest struct {
	UserIDs []string `json:"userIds"`
}

// Response types

type DeleteQuestionResponse struct {
	QuestionID string `json:"questionId"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	AvatarURL string `json:"avatarUrl"`
}

// Domain types

// Option is one side of a question. Text is immutable once created; Votes
// holds the ids of every user currently voting for this side.
type Option struct {
	Text  string   `json:"text" dynamodbav:"text"`
	Votes []string `json:"votes" dynamodbav:"votes"`
}

// Question is the full question record, keyed by (authorId, createdAt) with
// a secondary index on questionId. Writes always replace the whole record.
type Question struct {
	QuestionID string `json:"questionId" dynamodbav:"questionId"`
	AuthorID   string `json:"authorId" dynamodbav:"authorId"`
	CreatedAt  int64  `json:"createdAt" dynamodbav:"createdAt"` // epoch millis
	OptionOne  Option `json:"optionOne" dynamodbav:"optionOne"`
	OptionTwo  Option `json:"optionTwo" dynamodbav:"optionTwo"`
}

// QuestionKey is the composite primary key of a Question, used for batch gets.
type QuestionKey struct {
	AuthorID  string `dynamodbav:"authorId"`
	CreatedAt int64  `dynamodbav:"createdAt"`
}

// QuestionDateRecord is a lightweight pointer into the Questions table,
// partitioned by calendar day so questions can be listed by recency without
// a full table scan. Exactly one exists per Question.
type QuestionDateRecord struct {
	QuestionCreateDate string `json:"questionCreateDate" dynamodbav:"questionCreateDate"` // YYYY-MM-DD
	CreatedAt          int64  `json:"createdAt" dynamodbav:"createdAt"`
	AuthorID           string `json:"authorId" dynamodbav:"authorId"`
	QuestionID         string `json:"questionId" dynamodbav:"questionId"`
}

// DateRecordKey is the primary key of a QuestionDateRecord. It doubles as the
// resume cursor for date-paged question listings.
type DateRecordKey struct {
	QuestionCreateDate string `json:"questionCreateDate" dynamodbav:"questionCreateDate"`
	CreatedAt          int64  `json:"createdAt" dynamodbav:"createdAt"`
}

// DateRecordRequest is the parameter bundle for a date-paged listing. It is
// never persisted. LastEvaluatedKey applies only to the first day queried.
type DateRecordRequest struct {
	QuestionCreateDate string
	Limit              int
	LastEvaluatedKey   *DateRecordKey
}

// User is a profile record. Questions mirrors the ids of questions the user
// authored and is maintained by the record-change stream consumer, not by the
// question write path itself.
type User struct {
	UserID    string   `json:"userId" dynamodbav:"userId"`
	Name      string   `json:"name" dynamodbav:"name"`
	AvatarURL string   `json:"avatarUrl" dynamodbav:"avatarUrl"`
	Answers   []Answer `json:"answers" dynamodbav:"answers"`
	Questions []string `json:"questions" dynamodbav:"questions"`
}

type Answer struct {
	QuestionID string `json:"questionId" dynamodbav:"questionId"`
	Answer     string `json:"answer" dynamodbav:"answer"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
