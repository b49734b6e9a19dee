package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadMultipartForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}

		if got := r.FormValue("field_id"); got != "9" {
			t.Errorf("field_id: expected 9, got %q", got)
		}
		if got := r.FormValue("latitude"); got != "34.05" {
			t.Errorf("latitude: expected 34.05, got %q", got)
		}
		if got := r.FormValue("longitude"); got != "-118.24" {
			t.Errorf("longitude: expected -118.24, got %q", got)
		}

		file, header, err := r.FormFile("image_file")
		if err != nil {
			t.Fatalf("image_file missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "leaf.jpg" {
			t.Errorf("filename: expected leaf.jpg, got %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake-jpeg-bytes" {
			t.Errorf("unexpected file content: %q", data)
		}

		w.Write([]byte(`{"id": 11, "field_id": 9, "latitude": 34.05, "longitude": -118.24, "stress_level": "moderate", "confidence": 0.82}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(StaticToken("tok")))
	result, err := client.Upload(context.Background(), UploadRequest{
		Image:     strings.NewReader("fake-jpeg-bytes"),
		Filename:  "leaf.jpg",
		FieldID:   9,
		Latitude:  34.05,
		Longitude: -118.24,
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if result.StressLevel != "moderate" || result.ID != 11 {
		t.Errorf("unexpected analysis result: %+v", result)
	}
}

func TestUploadFileReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("png-ish"), 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("image_file")
		if err != nil {
			t.Fatalf("image_file missing: %v", err)
		}
		if header.Filename != "shot.png" {
			t.Errorf("expected basename shot.png, got %q", header.Filename)
		}
		w.Write([]byte(`{"id": 1, "field_id": 2, "stress_level": "healthy"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.UploadFile(context.Background(), path, 2, 1.5, 2.5); err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
}

func TestUploadFileMissing(t *testing.T) {
	client := NewClient("http://unused.example.com")
	_, err := client.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"), 1, 0, 0)
	if err == nil {
		t.Fatal("expected error for missing image file")
	}
}

func TestUploadRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "unsupported image format"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Upload(context.Background(), UploadRequest{
		Image:    strings.NewReader("x"),
		Filename: "x.bmp",
		FieldID:  1,
	})

	re, ok := IsRemote(err)
	if !ok {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Message != "unsupported image format" {
		t.Errorf("unexpected message: %q", re.Message)
	}
}
