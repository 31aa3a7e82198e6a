package services

import (
	"bytes"
	"context"
	"image/jpeg"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFeedHubPublishSubscribe(t *testing.T) {
	hub := NewFeedHub()
	cam := uuid.New()

	frames, leave := hub.Subscribe(cam)
	if hub.Viewers(cam) != 1 {
		t.Fatalf("viewers = %d, want 1", hub.Viewers(cam))
	}

	hub.Publish(cam, []byte("jpeg-1"))
	select {
	case got := <-frames:
		if string(got) != "jpeg-1" {
			t.Fatalf("got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("frame not delivered")
	}

	latest, ok := hub.Latest(cam, time.Minute)
	if !ok || string(latest) != "jpeg-1" {
		t.Fatalf("Latest = %q, %v", latest, ok)
	}

	leave()
	leave()
	if hub.Viewers(cam) != 0 {
		t.Fatalf("viewers after leave = %d", hub.Viewers(cam))
	}
}

func TestFeedHubSlowViewerDoesNotBlock(t *testing.T) {
	hub := NewFeedHub()
	cam := uuid.New()
	_, leave := hub.Subscribe(cam)
	defer leave()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Publish(cam, []byte{byte(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow viewer")
	}
}

func TestFeedHubLatestStale(t *testing.T) {
	hub := NewFeedHub()
	cam := uuid.New()
	hub.Publish(cam, []byte("old"))
	hub.mu.Lock()
	f := hub.latest[cam]
	f.at = time.Now().Add(-time.Minute)
	hub.latest[cam] = f
	hub.mu.Unlock()

	if _, ok := hub.Latest(cam, 3*time.Second); ok {
		t.Fatal("stale frame returned")
	}
	hub.Forget(cam)
	if _, ok := hub.Latest(cam, 0); ok {
		t.Fatal("forgotten frame returned")
	}
}

func TestPlaceholderIsJPEG(t *testing.T) {
	hub := NewFeedHub()
	data := hub.Placeholder("Lobby Cam")
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("placeholder is not a JPEG: %v", err)
	}
	if again := hub.Placeholder("Lobby Cam"); &again[0] != &data[0] {
		t.Error("placeholder should be cached per label")
	}
}

func TestStreamWritesFramesUntilCancelled(t *testing.T) {
	hub := NewFeedHub()
	cam := uuid.New()
	out := &lockedBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- hub.Stream(ctx, out, cam, StreamOptions{Label: "Gate", Keepalive: time.Hour})
	}()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Viewers(cam) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	hub.Publish(cam, []byte("live-frame"))

	for !strings.Contains(out.String(), "live-frame") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("Stream returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Stream did not stop on cancel")
	}

	body := out.String()
	if !strings.HasPrefix(body, "--frame\r\nContent-Type: image/jpeg\r\n") {
		t.Fatalf("unexpected stream start: %q", body[:min(len(body), 40)])
	}
	if !strings.Contains(body, "Content-Length: 10\r\n\r\nlive-frame\r\n") {
		t.Fatal("live frame part missing")
	}
	if hub.Viewers(cam) != 0 {
		t.Fatal("viewer not released")
	}
}
