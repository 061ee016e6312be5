package notifier

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSend_PostsChatIDAndText(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier("token", "12345", "", 5*time.Second)
	n.APIBase = srv.URL

	if err := n.Send("hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["chat_id"] != "12345" || got["text"] != "hello" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestSend_RejectedCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("bad-token", "12345", "", 5*time.Second)
	n.APIBase = srv.URL

	if err := n.Send("hello"); err == nil {
		t.Fatal("expected error for rejected credential")
	}
}
