// stream/stream_test.go
package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/store"
	"github.com/danielhkuo/rather/testutil"
)

func questionImage(t *testing.T, q models.Question) store.Item {
	t.Helper()
	item, err := attributevalue.MarshalMap(q)
	if err != nil {
		t.Fatal(err)
	}
	return item
}

func testQuestion() models.Question {
	return models.Question{
		QuestionID: "q1",
		AuthorID:   "alice",
		CreatedAt:  1590062400000, // 2020-05-21T12:00:00Z
		OptionOne:  models.Option{Text: "work from a boat", Votes: []string{}},
		OptionTwo:  models.Option{Text: "work from a cabin", Votes: []string{}},
	}
}

func TestProcess_InsertCreatesDateRecordAndLinksAuthor(t *testing.T) {
	_, repos := testutil.SetupRepos(t)
	testutil.SeedUser(t, repos, "alice", "Alice")
	p := NewProcessor(repos.Dates, repos.Users)
	ctx := context.Background()

	q := testQuestion()
	p.Process(ctx, []RecordChange{
		{EventName: EventInsert, NewImage: questionImage(t, q)},
	})

	recs, err := repos.Dates.QueryByDate(ctx, models.DateRecordRequest{
		QuestionCreateDate: "2020-05-21",
		Limit:              10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 date record, got %d", len(recs))
	}
	if recs[0].QuestionID != "q1" || recs[0].AuthorID != "alice" || recs[0].CreatedAt != q.CreatedAt {
		t.Errorf("unexpected date record: %+v", recs[0])
	}

	u, err := repos.Users.GetByID(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(u.Questions) != 1 || u.Questions[0] != "q1" {
		t.Errorf("expected question linked to author profile, got %v", u.Questions)
	}
}

func TestProcess_InsertIsIdempotentOnProfile(t *testing.T) {
	_, repos := testutil.SetupRepos(t)
	testutil.SeedUser(t, repos, "alice", "Alice")
	p := NewProcessor(repos.Dates, repos.Users)
	ctx := context.Background()

	image := questionImage(t, testQuestion())
	// Feeds redeliver; the same insert twice must not double-link.
	p.Process(ctx, []RecordChange{
		{EventName: EventInsert, NewImage: image},
		{EventName: EventInsert, NewImage: image},
	})

	u, err := repos.Users.GetByID(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(u.Questions) != 1 {
		t.Errorf("expected one linked question after redelivery, got %v", u.Questions)
	}
}

func TestProcess_RemoveDeletesDateRecordAndUnlinksAuthor(t *testing.T) {
	_, repos := testutil.SetupRepos(t)
	testutil.SeedUser(t, repos, "alice", "Alice")
	p := NewProcessor(repos.Dates, repos.Users)
	ctx := context.Background()

	q := testQuestion()
	p.Process(ctx, []RecordChange{
		{EventName: EventInsert, NewImage: questionImage(t, q)},
	})
	p.Process(ctx, []RecordChange{
		{EventName: EventRemove, OldImage: questionImage(t, q)},
	})

	recs, err := repos.Dates.QueryByDate(ctx, models.DateRecordRequest{
		QuestionCreateDate: "2020-05-21",
		Limit:              10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("expected date record removed, got %+v", recs)
	}

	u, err := repos.Users.GetByID(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(u.Questions) != 0 {
		t.Errorf("expected question unlinked from profile, got %v", u.Questions)
	}
}

func TestProcess_ModifyIgnored(t *testing.T) {
	_, repos := testutil.SetupRepos(t)
	testutil.SeedUser(t, repos, "alice", "Alice")
	p := NewProcessor(repos.Dates, repos.Users)
	ctx := context.Background()

	p.Process(ctx, []RecordChange{
		{EventName: EventModify, NewImage: questionImage(t, testQuestion())},
	})

	count, err := repos.Dates.CountAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("modify events must not touch the date index, count %d", count)
	}
}

func TestProcess_BadRecordDoesNotStallBatch(t *testing.T) {
	_, repos := testutil.SetupRepos(t)
	testutil.SeedUser(t, repos, "alice", "Alice")
	p := NewProcessor(repos.Dates, repos.Users)
	ctx := context.Background()

	// First change has no image and fails; the second must still apply.
	p.Process(ctx, []RecordChange{
		{EventName: EventInsert},
		{EventName: EventInsert, NewImage: questionImage(t, testQuestion())},
	})

	count, err := repos.Dates.CountAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected the valid record applied, count %d", count)
	}
}

func TestDateRecordFromImage_MissingImage(t *testing.T) {
	if _, err := dateRecordFromImage(nil); err == nil {
		t.Error("expected error for missing image")
	}
}

func TestProcess_InsertWithoutProfileStillWritesDateRecord(t *testing.T) {
	_, repos := testutil.SetupRepos(t)
	p := NewProcessor(repos.Dates, repos.Users)
	ctx := context.Background()

	// A subject can create questions before ever saving a profile. The date
	// pointer must land anyway; only the profile link is skipped.
	p.Process(ctx, []RecordChange{
		{EventName: EventInsert, NewImage: questionImage(t, testQuestion())},
	})

	recs, err := repos.Dates.QueryByDate(ctx, models.DateRecordRequest{
		QuestionCreateDate: "2020-05-21",
		Limit:              10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 date record for profileless author, got %d", len(recs))
	}
	if recs[0].QuestionID != "q1" {
		t.Errorf("unexpected date record: %+v", recs[0])
	}

	if _, err := repos.Users.GetByID(ctx, "alice"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected no profile created as a side effect, got %v", err)
	}
}

func TestProcess_RemoveWithoutProfileStillDeletesDateRecord(t *testing.T) {
	_, repos := testutil.SetupRepos(t)
	p := NewProcessor(repos.Dates, repos.Users)
	ctx := context.Background()

	q := testQuestion()
	p.Process(ctx, []RecordChange{
		{EventName: EventInsert, NewImage: questionImage(t, q)},
	})
	p.Process(ctx, []RecordChange{
		{EventName: EventRemove, OldImage: questionImage(t, q)},
	})

	count, err := repos.Dates.CountAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected date record removed for profileless author, count %d", count)
	}
}
