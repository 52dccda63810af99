// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/rather/middleware"
	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/service"
	"github.com/danielhkuo/rather/testutil"
)

func newQuestionHandler(t *testing.T) (*QuestionHandler, testutil.Repos, *service.QuestionService) {
	t.Helper()
	_, repos := testutil.SetupRepos(t)
	svc := service.NewQuestionService(repos.Questions, repos.Dates, 20, "2020-01-01")
	return NewQuestionHandler(svc), repos, svc
}

// asUser routes the call through RequireAuth so the handler sees a verified
// caller, the way the router wires it.
func asUser(userID string, h http.HandlerFunc) http.HandlerFunc {
	return middleware.RequireAuth(testutil.StaticVerifier{Subj: userID}, h)
}

func TestCreateQuestion(t *testing.T) {
	h, _, _ := newQuestionHandler(t)

	req := testutil.MakeRequest("POST", "/questions", models.CreateQuestionRequest{
		OptionOneText: "live in the mountains",
		OptionTwoText: "live by the sea",
	}, nil)
	w := httptest.NewRecorder()
	asUser("alice", h.CreateQuestion)(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var q models.Question
	testutil.AssertJSON(t, w, &q)
	if q.AuthorID != "alice" {
		t.Errorf("expected author from token subject, got %s", q.AuthorID)
	}
	if q.QuestionID == "" {
		t.Error("expected generated question id")
	}
}

func TestCreateQuestion_ShortOptionText(t *testing.T) {
	h, _, _ := newQuestionHandler(t)

	req := testutil.MakeRequest("POST", "/questions", models.CreateQuestionRequest{
		OptionOneText: "abcd",
		OptionTwoText: "live by the sea",
	}, nil)
	w := httptest.NewRecorder()
	asUser("alice", h.CreateQuestion)(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetQuestion(t *testing.T) {
	h, repos, _ := newQuestionHandler(t)
	q := testutil.SeedQuestion(t, repos, "alice", 1590062400000)

	req := testutil.MakeRequest("GET", "/questions/"+q.QuestionID, nil, nil)
	req.SetPathValue("id", q.QuestionID)
	w := httptest.NewRecorder()
	h.GetQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var got models.Question
	testutil.AssertJSON(t, w, &got)
	if got.QuestionID != q.QuestionID {
		t.Errorf("expected question %s, got %s", q.QuestionID, got.QuestionID)
	}
}

func TestGetQuestion_NotFound(t *testing.T) {
	h, _, _ := newQuestionHandler(t)

	req := testutil.MakeRequest("GET", "/questions/missing", nil, nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	h.GetQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteQuestion(t *testing.T) {
	h, repos, _ := newQuestionHandler(t)
	q := testutil.SeedQuestion(t, repos, "alice", 1590062400000)

	req := testutil.MakeRequest("DELETE", "/questions/"+q.QuestionID, nil, nil)
	req.SetPathValue("id", q.QuestionID)
	w := httptest.NewRecorder()
	asUser("alice", h.DeleteQuestion)(w, req)

	testutil.AssertStatus(t, w, http.StatusAccepted)

	var resp models.DeleteQuestionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.QuestionID != q.QuestionID {
		t.Errorf("expected deleted id %s, got %s", q.QuestionID, resp.QuestionID)
	}
}

func TestDeleteQuestion_NonOwnerForbidden(t *testing.T) {
	h, repos, svc := newQuestionHandler(t)
	q := testutil.SeedQuestion(t, repos, "alice", 1590062400000)

	req := testutil.MakeRequest("DELETE", "/questions/"+q.QuestionID, nil, nil)
	req.SetPathValue("id", q.QuestionID)
	w := httptest.NewRecorder()
	asUser("mallory", h.DeleteQuestion)(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)

	if _, err := svc.GetQuestion(req.Context(), q.QuestionID); err != nil {
		t.Errorf("question must survive a forbidden delete: %v", err)
	}
}

func TestCastVote(t *testing.T) {
	h, repos, _ := newQuestionHandler(t)
	q := testutil.SeedQuestion(t, repos, "alice", 1590062400000)

	req := testutil.MakeRequest("POST", "/questions/"+q.QuestionID+"/votes", models.CastVoteRequest{
		Option: "optionOne",
	}, nil)
	req.SetPathValue("id", q.QuestionID)
	w := httptest.NewRecorder()
	asUser("bob", h.CastVote)(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var got models.Question
	testutil.AssertJSON(t, w, &got)
	if len(got.OptionOne.Votes) != 1 || got.OptionOne.Votes[0] != "bob" {
		t.Errorf("expected bob on option one, got %v", got.OptionOne.Votes)
	}
}

func TestCastVote_InvalidOption(t *testing.T) {
	h, repos, _ := newQuestionHandler(t)
	q := testutil.SeedQuestion(t, repos, "alice", 1590062400000)

	req := testutil.MakeRequest("POST", "/questions/"+q.QuestionID+"/votes", models.CastVoteRequest{
		Option: "optionThree",
	}, nil)
	req.SetPathValue("id", q.QuestionID)
	w := httptest.NewRecorder()
	asUser("bob", h.CastVote)(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetQuestionsByDate(t *testing.T) {
	h, repos, _ := newQuestionHandler(t)
	// Three on the requested day, two the day before.
	testutil.SeedQuestion(t, repos, "alice", 1590062401000)
	testutil.SeedQuestion(t, repos, "alice", 1590062402000)
	testutil.SeedQuestion(t, repos, "alice", 1590062403000)
	testutil.SeedQuestion(t, repos, "bob", 1589976001000)
	testutil.SeedQuestion(t, repos, "bob", 1589976002000)

	req := testutil.MakeRequest("GET", "/questions?questionCreateDate=2020-05-21&limit=5", nil, nil)
	w := httptest.NewRecorder()
	h.GetQuestionsByDate(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var got []models.Question
	testutil.AssertJSON(t, w, &got)
	if len(got) != 5 {
		t.Fatalf("expected all 5 questions, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].CreatedAt < got[i].CreatedAt {
			t.Error("expected createdAt descending")
		}
	}
}

func TestGetQuestionsByDate_BadDate(t *testing.T) {
	h, _, _ := newQuestionHandler(t)

	for _, date := range []string{"2020-13-01", "21-05-2020", "2020-05-32", "junk"} {
		req := testutil.MakeRequest("GET", "/questions?questionCreateDate="+date, nil, nil)
		w := httptest.NewRecorder()
		h.GetQuestionsByDate(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}

func TestGetQuestionsByDate_BadLimit(t *testing.T) {
	h, _, _ := newQuestionHandler(t)

	req := testutil.MakeRequest("GET", "/questions?limit=ten", nil, nil)
	w := httptest.NewRecorder()
	h.GetQuestionsByDate(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetQuestionsByDate_CursorMustBeAPair(t *testing.T) {
	h, _, _ := newQuestionHandler(t)

	req := testutil.MakeRequest("GET", "/questions?lastEvaluatedDate=2020-05-21", nil, nil)
	w := httptest.NewRecorder()
	h.GetQuestionsByDate(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetQuestionsByDate_WithCursor(t *testing.T) {
	h, repos, _ := newQuestionHandler(t)
	testutil.SeedQuestion(t, repos, "alice", 1590062401000)
	testutil.SeedQuestion(t, repos, "alice", 1590062402000)
	testutil.SeedQuestion(t, repos, "alice", 1590062403000)

	req := testutil.MakeRequest("GET",
		"/questions?questionCreateDate=2020-05-21&limit=5&lastEvaluatedDate=2020-05-21&lastEvaluatedCreatedAt=1590062402000",
		nil, nil)
	w := httptest.NewRecorder()
	h.GetQuestionsByDate(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var got []models.Question
	testutil.AssertJSON(t, w, &got)
	if len(got) != 1 {
		t.Fatalf("expected 1 question after cursor, got %d", len(got))
	}
	if got[0].CreatedAt != 1590062401000 {
		t.Errorf("expected resume strictly after cursor, got %d", got[0].CreatedAt)
	}
}

func TestGetQuestionsByAuthor(t *testing.T) {
	h, repos, _ := newQuestionHandler(t)
	testutil.SeedQuestion(t, repos, "alice", 1590062401000)
	testutil.SeedQuestion(t, repos, "bob", 1590062402000)

	req := testutil.MakeRequest("GET", "/authors/alice/questions", nil, nil)
	req.SetPathValue("id", "alice")
	w := httptest.NewRecorder()
	h.GetQuestionsByAuthor(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var got []models.Question
	testutil.AssertJSON(t, w, &got)
	if len(got) != 1 {
		t.Errorf("expected 1 question for alice, got %d", len(got))
	}
}
