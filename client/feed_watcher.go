package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FeedState is what the live view shows for one camera
type FeedState int

const (
	FeedConnecting FeedState = iota
	FeedStreaming
	FeedRetrying
	FeedFailed
	FeedStopped
)

func (s FeedState) String() string {
	switch s {
	case FeedConnecting:
		return "connecting"
	case FeedStreaming:
		return "streaming"
	case FeedRetrying:
		return "retrying"
	case FeedFailed:
		return "failed"
	case FeedStopped:
		return "stopped"
	}
	return fmt.Sprintf("feed_state(%d)", int(s))
}

const (
	DefaultFeedRetries = 3
	DefaultFeedBackoff = 3 * time.Second

	maxFrameBytes = 10 << 20
)

var (
	errFeedEnded     = errors.New("feed ended")
	errNotMultipart  = errors.New("feed is not a multipart stream")
	errFrameTooLarge = errors.New("feed frame too large")
)

// FeedOptions tunes a FeedWatcher. Zero values take the defaults.
type FeedOptions struct {
	MaxRetries int           // failed attempts tolerated before FeedFailed
	Backoff    time.Duration // wait between attempts

	OnFrame func(frame []byte)
	OnState func(state FeedState, err error)
}

// FeedWatcher keeps one camera's MJPEG stream open. When the stream drops
// it reconnects up to MaxRetries times, Backoff apart, then parks in
// FeedFailed until Retry is called. A received frame restores the budget.
type FeedWatcher struct {
	client   *Client
	cameraID uuid.UUID
	opts     FeedOptions

	mu        sync.Mutex
	state     FeedState
	lastErr   error
	lastFrame []byte
	frames    int64
	cancel    context.CancelFunc
	done      chan struct{}

	retry chan struct{}
}

// WatchFeed prepares a watcher; nothing is opened until Start
func (c *Client) WatchFeed(cameraID uuid.UUID, opts FeedOptions) *FeedWatcher {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultFeedRetries
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultFeedBackoff
	}
	return &FeedWatcher{
		client:   c,
		cameraID: cameraID,
		opts:     opts,
		state:    FeedStopped,
		retry:    make(chan struct{}, 1),
	}
}

func (w *FeedWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(ctx, w.done)
}

// Stop closes the stream and waits for the watcher to settle in FeedStopped
func (w *FeedWatcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Retry is the manual "Retry Connection" action. It only applies in
// FeedFailed and gives the watcher a fresh attempt budget.
func (w *FeedWatcher) Retry() bool {
	if w.State() != FeedFailed {
		return false
	}
	select {
	case w.retry <- struct{}{}:
	default:
	}
	return true
}

func (w *FeedWatcher) State() FeedState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Err is the failure behind the current FeedRetrying or FeedFailed state
func (w *FeedWatcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// LastFrame returns the most recent JPEG, or nil before the first one
func (w *FeedWatcher) LastFrame() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastFrame
}

func (w *FeedWatcher) Frames() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

func (w *FeedWatcher) setState(state FeedState, err error) {
	w.mu.Lock()
	if w.state == state && err == nil {
		w.mu.Unlock()
		return
	}
	w.state = state
	w.lastErr = err
	w.mu.Unlock()

	if w.opts.OnState != nil {
		w.opts.OnState(state, err)
	}
}

func (w *FeedWatcher) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer w.setState(FeedStopped, nil)

	for {
		failures := 0
		for {
			w.setState(FeedConnecting, nil)
			gotFrame, err := w.stream(ctx)
			if ctx.Err() != nil {
				return
			}
			if gotFrame {
				failures = 0
			}
			failures++
			if failures > w.opts.MaxRetries {
				w.setState(FeedFailed, err)
				break
			}
			w.setState(FeedRetrying, err)

			select {
			case <-time.After(w.opts.Backoff):
			case <-ctx.Done():
				return
			}
		}

		select {
		case <-w.retry:
		case <-ctx.Done():
			return
		}
	}
}

// stream holds one connection open until it fails. gotFrame reports
// whether at least one frame arrived on it.
func (w *FeedWatcher) stream(ctx context.Context) (gotFrame bool, err error) {
	c := w.client
	query := url.Values{}
	if token := c.session.Token(); token != "" {
		query.Set("token", token)
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/video_feed/"+w.cameraID.String(), query, nil, "")
	if err != nil {
		return false, err
	}

	// the shared client's overall timeout would cut a healthy stream
	hc := &http.Client{Transport: c.http.Transport, Jar: c.http.Jar}
	resp, err := hc.Do(req)
	if err != nil {
		return false, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return false, c.checkStatus(resp.StatusCode, raw)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		return false, errNotMultipart
	}

	mr := multipart.NewReader(resp.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err != nil {
			if ctx.Err() != nil {
				return gotFrame, ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return gotFrame, errFeedEnded
			}
			return gotFrame, &NetworkError{Err: err}
		}

		frame, err := readFramePart(part)
		if err != nil {
			return gotFrame, &NetworkError{Err: err}
		}
		if len(frame) == 0 {
			continue
		}

		gotFrame = true
		w.mu.Lock()
		w.lastFrame = frame
		w.frames++
		w.mu.Unlock()
		w.setState(FeedStreaming, nil)
		if w.opts.OnFrame != nil {
			w.opts.OnFrame(frame)
		}
	}
}

// readFramePart honours Content-Length so a frame is handed over as soon
// as its bytes arrive, without waiting for the next boundary
func readFramePart(part *multipart.Part) ([]byte, error) {
	if n, err := strconv.Atoi(part.Header.Get("Content-Length")); err == nil && n >= 0 {
		if n > maxFrameBytes {
			return nil, errFrameTooLarge
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(part, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	buf, err := io.ReadAll(io.LimitReader(part, maxFrameBytes+1))
	if err != nil {
		return nil, err
	}
	if len(buf) > maxFrameBytes {
		return nil, errFrameTooLarge
	}
	return buf, nil
}
