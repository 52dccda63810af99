// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/danielhkuo/rather/middleware"
	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/service"
)

// Partition dates on the wire must be a real-looking YYYY-MM-DD day.
var dateRegex = regexp.MustCompile(`^(19|20)\d{2}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)

type QuestionHandler struct {
	questions *service.QuestionService
}

func NewQuestionHandler(questions *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// CreateQuestion handles POST /questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	q, err := h.questions.CreateQuestion(r.Context(), userID, req.OptionOneText, req.OptionTwoText)
	if errors.Is(err, service.ErrOptionTextTooShort) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, q)
}

// GetQuestion handles GET /questions/{id}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	q, err := h.questions.GetQuestion(r.Context(), questionID)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to get question", "question_id", questionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to get question")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, q)
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	deletedID, err := h.questions.DeleteQuestion(r.Context(), questionID, middleware.UserID(r))
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if errors.Is(err, models.ErrForbidden) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the question's author may delete it")
		return
	}
	if err != nil {
		slog.Error("failed to delete question", "question_id", questionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}

	middleware.JSONResponse(w, http.StatusAccepted, models.DeleteQuestionResponse{
		QuestionID: deletedID,
	})
}

// GetQuestionsByAuthor handles GET /authors/{id}/questions
func (h *QuestionHandler) GetQuestionsByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := r.PathValue("id")
	if authorID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author id is required")
		return
	}

	questions, err := h.questions.GetQuestionsByAuthor(r.Context(), authorID)
	if err != nil {
		slog.Error("failed to list author questions", "author_id", authorID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list questions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// GetQuestionsByDate handles GET /questions
//
// Query parameters: questionCreateDate (YYYY-MM-DD, defaults to today),
// limit, and an optional resume cursor given as the pair lastEvaluatedDate +
// lastEvaluatedCreatedAt. A shorter-than-requested page means the dataset
// ran out, not that the request failed.
func (h *QuestionHandler) GetQuestionsByDate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := models.DateRecordRequest{
		QuestionCreateDate: query.Get("questionCreateDate"),
	}
	if req.QuestionCreateDate != "" && !dateRegex.MatchString(req.QuestionCreateDate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "questionCreateDate must be YYYY-MM-DD")
		return
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	lastDate := query.Get("lastEvaluatedDate")
	lastCreated := query.Get("lastEvaluatedCreatedAt")
	if (lastDate == "") != (lastCreated == "") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "lastEvaluatedDate and lastEvaluatedCreatedAt must be given together")
		return
	}
	if lastDate != "" {
		if !dateRegex.MatchString(lastDate) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "lastEvaluatedDate must be YYYY-MM-DD")
			return
		}
		createdAt, err := strconv.ParseInt(lastCreated, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "lastEvaluatedCreatedAt must be an integer timestamp")
			return
		}
		req.LastEvaluatedKey = &models.DateRecordKey{
			QuestionCreateDate: lastDate,
			CreatedAt:          createdAt,
		}
	}

	questions, err := h.questions.GetQuestionsByDate(r.Context(), req)
	if err != nil {
		slog.Error("failed to list questions by date", "date", req.QuestionCreateDate, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list questions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// CastVote handles POST /questions/{id}/votes
func (h *QuestionHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	q, err := h.questions.CastVote(r.Context(), questionID, middleware.UserID(r), req.Option)
	if errors.Is(err, models.ErrInvalidOption) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option must be optionOne, optionTwo, or remove")
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to cast vote", "question_id", questionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, q)
}
