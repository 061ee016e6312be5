package notifier

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStartPolling_StopsDuringBackoff(t *testing.T) {
	// A server that is already closed makes every getUpdates attempt fail,
	// parking the loop in its retry wait.
	srv := httptest.NewServer(nil)
	srv.Close()

	n := NewTelegramNotifier("token", "12345", "", time.Second)
	n.APIBase = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.StartPolling(ctx, func(string) string { return "" })
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("polling did not stop promptly after cancellation")
	}
}
