package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"log"
	"sync"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/metrics"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	MJPEGBoundary    = "frame"
	MJPEGContentType = "multipart/x-mixed-replace; boundary=" + MJPEGBoundary

	placeholderWidth  = 640
	placeholderHeight = 360
)

type feedFrame struct {
	data []byte
	at   time.Time
}

// FeedHub keeps the latest JPEG per camera and fans new frames out to viewers
type FeedHub struct {
	mu      sync.RWMutex
	latest  map[uuid.UUID]feedFrame
	clients map[uuid.UUID]map[int]chan []byte
	nextID  int

	placeholderMu sync.Mutex
	placeholders  map[string][]byte
}

func NewFeedHub() *FeedHub {
	return &FeedHub{
		latest:       make(map[uuid.UUID]feedFrame),
		clients:      make(map[uuid.UUID]map[int]chan []byte),
		placeholders: make(map[string][]byte),
	}
}

// Publish stores frame as the camera's latest and hands it to every viewer.
// Slow viewers drop frames rather than block the publisher.
func (h *FeedHub) Publish(cameraID uuid.UUID, frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest[cameraID] = feedFrame{data: frame, at: time.Now()}
	metrics.FeedFrames.Inc()

	for _, ch := range h.clients[cameraID] {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Latest returns the newest frame if it is younger than maxAge
func (h *FeedHub) Latest(cameraID uuid.UUID, maxAge time.Duration) ([]byte, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	f, ok := h.latest[cameraID]
	if !ok || (maxAge > 0 && time.Since(f.at) > maxAge) {
		return nil, false
	}
	return f.data, true
}

// Subscribe registers a viewer; call the returned func to leave
func (h *FeedHub) Subscribe(cameraID uuid.UUID) (<-chan []byte, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan []byte, 2)
	if h.clients[cameraID] == nil {
		h.clients[cameraID] = make(map[int]chan []byte)
	}
	h.clients[cameraID][id] = ch
	metrics.FeedViewers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.clients[cameraID], id)
			if len(h.clients[cameraID]) == 0 {
				delete(h.clients, cameraID)
			}
			close(ch)
			metrics.FeedViewers.Dec()
		})
	}
}

// Viewers counts open viewers of a camera
func (h *FeedHub) Viewers(cameraID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[cameraID])
}

// Forget drops the stored frame of a deleted camera
func (h *FeedHub) Forget(cameraID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.latest, cameraID)
}

// Placeholder renders (once per label) the "No signal" card sent while a camera is silent
func (h *FeedHub) Placeholder(label string) []byte {
	h.placeholderMu.Lock()
	defer h.placeholderMu.Unlock()

	if data, ok := h.placeholders[label]; ok {
		return data
	}
	data, err := renderPlaceholder(label)
	if err != nil {
		log.Printf("[feed] failed to render placeholder: %v", err)
		return nil
	}
	h.placeholders[label] = data
	return data
}

func renderPlaceholder(label string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 24, G: 24, B: 27, A: 255}}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lines := []string{"No signal", label}
	for i, line := range lines {
		if line == "" {
			continue
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.RGBA{R: 200, G: 200, B: 200, A: 255}),
			Face: face,
		}
		width := d.MeasureString(line).Ceil()
		x := (placeholderWidth - width) / 2
		y := placeholderHeight/2 + i*20
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteMJPEGPart writes one multipart frame
func WriteMJPEGPart(w io.Writer, frame []byte) error {
	if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", MJPEGBoundary, len(frame)); err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return err
	}
	_, err := w.Write([]byte("\r\n"))
	return err
}

// StreamOptions tunes a single viewer's stream
type StreamOptions struct {
	Label      string
	Keepalive  time.Duration // placeholder cadence while the camera is silent
	StaleAfter time.Duration
	Flush      func()
}

// Stream writes MJPEG parts for cameraID until ctx ends or a write fails
func (h *FeedHub) Stream(ctx context.Context, w io.Writer, cameraID uuid.UUID, opts StreamOptions) error {
	if opts.Keepalive <= 0 {
		opts.Keepalive = 5 * time.Second
	}
	flush := opts.Flush
	if flush == nil {
		flush = func() {}
	}

	frames, leave := h.Subscribe(cameraID)
	defer leave()

	first, ok := h.Latest(cameraID, opts.StaleAfter)
	if !ok {
		first = h.Placeholder(opts.Label)
	}
	if err := WriteMJPEGPart(w, first); err != nil {
		return err
	}
	flush()

	keepalive := time.NewTicker(opts.Keepalive)
	defer keepalive.Stop()

	for {
		var frame []byte
		select {
		case <-ctx.Done():
			return nil
		case data, open := <-frames:
			if !open {
				return nil
			}
			frame = data
			keepalive.Reset(opts.Keepalive)
		case <-keepalive.C:
			frame = h.Placeholder(opts.Label)
		}

		if err := WriteMJPEGPart(w, frame); err != nil {
			log.Printf("[feed] viewer of %s disconnected: %v", cameraID, err)
			return err
		}
		flush()
	}
}

var feedHub = NewFeedHub()

// GetFeedHub returns the process-wide feed hub
func GetFeedHub() *FeedHub {
	return feedHub
}
