package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testMediaService(srv *httptest.Server) *MediaService {
	return &MediaService{
		ServiceURL: srv.URL,
		CDNURL:     srv.URL,
		PublicKey:  "public_test",
		PrivateKey: "private_test",
		client:     srv.Client(),
	}
}

func TestMediaServiceUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/media/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Private-Key") != "private_test" {
			t.Errorf("missing private key header")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("folder"); got != "user_1" {
			t.Errorf("folder = %q, want user_1", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "pic.png" {
			t.Errorf("filename = %q, want pic.png", header.Filename)
		}

		_ = json.NewEncoder(w).Encode(mediaUploadResponse{
			Name:     "a1b2_pic.png",
			FilePath: "user_1/a1b2_pic.png",
			URL:      "https://cdn.example/user_1/a1b2_pic.png",
			FileType: "image/png",
			Size:     4,
		})
	}))
	defer srv.Close()

	m := testMediaService(srv)
	result, err := m.Upload(context.Background(), strings.NewReader("data"), 4, "pic.png", "image/png", "user_1")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if result.Name != "a1b2_pic.png" || result.URL == "" {
		t.Errorf("unexpected result %+v", result)
	}
	if len(result.Raw) == 0 {
		t.Errorf("raw response must be preserved")
	}
}

func TestMediaServiceUploadRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	m := testMediaService(srv)
	if _, err := m.Upload(context.Background(), strings.NewReader("data"), 4, "pic.png", "image/png", "user_1"); err == nil {
		t.Errorf("expected error on non-2xx upload response")
	}
}

func TestMediaServiceSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/media/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("name"); got != "pic.png" {
			t.Errorf("name = %q, want pic.png", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		_ = json.NewEncoder(w).Encode([]StoredObject{{Name: "u/pic.png", Path: "u/pic.png", Size: 9}})
	}))
	defer srv.Close()

	m := testMediaService(srv)
	matches, err := m.Search(context.Background(), "pic.png", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "u/pic.png" {
		t.Errorf("unexpected matches %v", matches)
	}
}

func TestMediaServiceDeleteByName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	m := testMediaService(srv)
	if err := m.DeleteByName(context.Background(), "u/pic.png"); err != nil {
		t.Fatalf("DeleteByName failed: %v", err)
	}
	if gotPath != "/api/v1/media/u%2Fpic.png" {
		t.Errorf("path = %q, want escaped object name", gotPath)
	}
}

func TestMediaServiceDeleteByNamePropagatesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	m := testMediaService(srv)
	if err := m.DeleteByName(context.Background(), "ghost.png"); err == nil {
		t.Errorf("expected error on 404 delete response")
	}
}
