package telegram_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/internal/telegram"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"
)

func newBotAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "/botbad:token/") {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
			return
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Delivery","username":"deliverbot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendDocument"):
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":42,"chat":{"id":777,"type":"private"},"document":{"file_id":"F1","file_unique_id":"U1"}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"ok":false,"description":"method not found"}`)
		}
	}))
}

func TestValidate(t *testing.T) {
	server := newBotAPIServer(t)
	defer server.Close()

	client := telegram.NewClient(server.URL+"/bot%s/%s", 5*time.Second)

	username, err := client.Validate("111:AAA")
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if username != "deliverbot" {
		t.Errorf("Expected username deliverbot, got %q", username)
	}
}

func TestValidateRejectedToken(t *testing.T) {
	server := newBotAPIServer(t)
	defer server.Close()

	client := telegram.NewClient(server.URL+"/bot%s/%s", 5*time.Second)

	_, err := client.Validate("bad:token")
	if !apperrors.IsDependency(err) {
		t.Errorf("Expected dependency error for rejected token, got %v", err)
	}
}

func TestSendFile(t *testing.T) {
	server := newBotAPIServer(t)
	defer server.Close()

	client := telegram.NewClient(server.URL+"/bot%s/%s", 5*time.Second)

	filePath := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(filePath, []byte("fake video bytes"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	result, err := client.SendFile("111:AAA", 777, filePath)
	if err != nil {
		t.Fatalf("Failed to send file: %v", err)
	}
	if result.FileID != "F1" {
		t.Errorf("Expected file id F1, got %q", result.FileID)
	}
	if result.MessageID != 42 {
		t.Errorf("Expected message id 42, got %d", result.MessageID)
	}
	if result.MessageLink != "https://t.me/deliverbot/42" {
		t.Errorf("Expected message permalink, got %q", result.MessageLink)
	}
}
