// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/service"
	"github.com/danielhkuo/rather/testutil"
)

type stubPresigner struct {
	lastKey    string
	lastBucket string
}

func (p *stubPresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	p.lastKey = *params.Key
	p.lastBucket = *params.Bucket
	return &v4.PresignedHTTPRequest{
		URL:    "https://signed.example/" + *params.Key,
		Method: http.MethodPut,
	}, nil
}

func newAvatarHandler(t *testing.T) (*AvatarHandler, *stubPresigner, testutil.Repos, *service.UserService) {
	t.Helper()
	_, repos := testutil.SetupRepos(t)
	users := service.NewUserService(repos.Users)
	presigner := &stubPresigner{}
	return NewAvatarHandler(users, presigner, testutil.GetTestConfig()), presigner, repos, users
}

func TestGetUploadURL(t *testing.T) {
	h, presigner, repos, users := newAvatarHandler(t)
	testutil.SeedUser(t, repos, "alice", "Alice")

	req := testutil.MakeRequest("GET", "/users/me/avatar-upload-url?ext=png", nil, nil)
	w := httptest.NewRecorder()
	asUser("alice", h.GetUploadURL)(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UploadURLResponse
	testutil.AssertJSON(t, w, &resp)
	if !strings.HasPrefix(resp.UploadURL, "https://signed.example/") {
		t.Errorf("expected presigned URL, got %s", resp.UploadURL)
	}
	if !strings.HasSuffix(resp.AvatarURL, ".png") {
		t.Errorf("expected png object name, got %s", resp.AvatarURL)
	}
	if presigner.lastBucket != "test-avatars" {
		t.Errorf("expected configured bucket, got %s", presigner.lastBucket)
	}

	// The profile now points at the upload target.
	u, err := users.GetUser(req.Context(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if u.AvatarURL != resp.AvatarURL {
		t.Errorf("expected profile avatar %s, got %s", resp.AvatarURL, u.AvatarURL)
	}
}

func TestGetUploadURL_FreshObjectPerRequest(t *testing.T) {
	h, presigner, repos, _ := newAvatarHandler(t)
	testutil.SeedUser(t, repos, "alice", "Alice")

	handler := asUser("alice", h.GetUploadURL)

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/users/me/avatar-upload-url?ext=jpg", nil, nil))
	first := presigner.lastKey

	w = httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/users/me/avatar-upload-url?ext=jpg", nil, nil))

	if first == presigner.lastKey {
		t.Error("expected a fresh object name per request")
	}
}

func TestGetUploadURL_RejectsBadExtension(t *testing.T) {
	h, _, repos, _ := newAvatarHandler(t)
	testutil.SeedUser(t, repos, "alice", "Alice")

	for _, ext := range []string{"", "gif", "png.exe", "PNG"} {
		req := testutil.MakeRequest("GET", "/users/me/avatar-upload-url?ext="+ext, nil, nil)
		w := httptest.NewRecorder()
		asUser("alice", h.GetUploadURL)(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}

func TestGetUploadURL_NoProfile(t *testing.T) {
	h, _, _, _ := newAvatarHandler(t)

	req := testutil.MakeRequest("GET", "/users/me/avatar-upload-url?ext=png", nil, nil)
	w := httptest.NewRecorder()
	asUser("alice", h.GetUploadURL)(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
