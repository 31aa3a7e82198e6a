package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/google/uuid"
)

func apiError(msg string) models.ApiResponse {
	return models.ApiResponse{Message: msg, Error: true}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func writePart(w http.ResponseWriter, frame []byte) {
	fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(frame))
	_, _ = w.Write(frame)
	_, _ = w.Write([]byte("\r\n"))
	w.(http.Flusher).Flush()
}

func jpegFrame(n byte) []byte {
	return []byte{0xFF, 0xD8, n, n, 0xFF, 0xD9}
}

func TestFeedWatcherGivesUpAfterRetries(t *testing.T) {
	var hits int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeEnvelope(w, http.StatusServiceUnavailable, apiError("Camera offline"))
	})

	fw := c.WatchFeed(uuid.New(), FeedOptions{Backoff: 5 * time.Millisecond})
	fw.Start(context.Background())
	defer fw.Stop()

	waitFor(t, "failed state", func() bool { return fw.State() == FeedFailed })
	// first attempt plus three retries
	if got := atomic.LoadInt32(&hits); got != 4 {
		t.Fatalf("attempts = %d, want 4", got)
	}
	var serr *ServerError
	if !errors.As(fw.Err(), &serr) || serr.Message != "Camera offline" {
		t.Fatalf("Err = %v", fw.Err())
	}

	// parked until the user asks again
	time.Sleep(30 * time.Millisecond)
	if got := atomic.LoadInt32(&hits); got != 4 {
		t.Fatalf("attempts while failed = %d", got)
	}

	if !fw.Retry() {
		t.Fatal("Retry should apply in FeedFailed")
	}
	waitFor(t, "second budget", func() bool { return atomic.LoadInt32(&hits) == 8 })
	waitFor(t, "failed again", func() bool { return fw.State() == FeedFailed })
}

func TestFeedWatcherStreamsFrames(t *testing.T) {
	var auth, token atomic.Value
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		token.Store(r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
		w.WriteHeader(http.StatusOK)
		writePart(w, jpegFrame(1))
		writePart(w, jpegFrame(2))
		<-r.Context().Done()
	})
	c.Session().Set("tok", models.UserResponse{})

	frames := make(chan []byte, 4)
	var states []FeedState
	stateCh := make(chan FeedState, 16)
	fw := c.WatchFeed(uuid.New(), FeedOptions{
		Backoff: 5 * time.Millisecond,
		OnFrame: func(f []byte) { frames <- f },
		OnState: func(s FeedState, _ error) { stateCh <- s },
	})
	fw.Start(context.Background())

	for i := 0; i < 2; i++ {
		select {
		case <-frames:
		case <-time.After(3 * time.Second):
			t.Fatal("frame not delivered")
		}
	}
	if fw.State() != FeedStreaming || fw.Frames() != 2 {
		t.Fatalf("state=%v frames=%d", fw.State(), fw.Frames())
	}
	if !bytes.Equal(fw.LastFrame(), jpegFrame(2)) {
		t.Fatal("last frame mismatch")
	}
	if auth.Load() != "Bearer tok" || token.Load() != "tok" {
		t.Fatalf("auth=%v token=%v", auth.Load(), token.Load())
	}

	fw.Stop()
	if fw.State() != FeedStopped {
		t.Fatalf("state after Stop = %v", fw.State())
	}
	close(stateCh)
	for s := range stateCh {
		states = append(states, s)
	}
	want := []FeedState{FeedConnecting, FeedStreaming, FeedStopped}
	if fmt.Sprint(states) != fmt.Sprint(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
}

func TestFeedWatcherFrameRestoresBudget(t *testing.T) {
	var hits int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		if n > 5 {
			writeEnvelope(w, http.StatusInternalServerError, apiError(""))
			return
		}
		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
		writePart(w, jpegFrame(byte(n)))
	})

	fw := c.WatchFeed(uuid.New(), FeedOptions{MaxRetries: 1, Backoff: time.Millisecond})
	fw.Start(context.Background())
	defer fw.Stop()

	waitFor(t, "failed state", func() bool { return fw.State() == FeedFailed })
	// five streams that each delivered a frame, then one failed retry
	if got := atomic.LoadInt32(&hits); got != 6 {
		t.Fatalf("attempts = %d, want 6", got)
	}
	if fw.Frames() != 5 {
		t.Fatalf("frames = %d", fw.Frames())
	}
}

func TestFeedWatcherRejectsNonStream(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})

	fw := c.WatchFeed(uuid.New(), FeedOptions{MaxRetries: 1, Backoff: time.Millisecond})
	if fw.Retry() {
		t.Fatal("Retry should not apply before a failure")
	}
	fw.Start(context.Background())
	defer fw.Stop()

	waitFor(t, "failed state", func() bool { return fw.State() == FeedFailed })
	if !errors.Is(fw.Err(), errNotMultipart) {
		t.Fatalf("Err = %v", fw.Err())
	}
}
