package cache

import (
	"sync"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/models"
)

const TTL = 5 * time.Minute

// ttlEntry holds one cached read model; a nil entry or an expired one is a miss
type ttlEntry[T any] struct {
	mu        sync.RWMutex
	data      T
	fetchedAt time.Time
	set       bool
}

func (e *ttlEntry[T]) get(ttl time.Duration) (T, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.set && time.Since(e.fetchedAt) < ttl {
		return e.data, true
	}
	var zero T
	return zero, false
}

func (e *ttlEntry[T]) put(data T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data = data
	e.fetchedAt = time.Now()
	e.set = true
}

func (e *ttlEntry[T]) clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	var zero T
	e.data = zero
	e.set = false
}

// ── Region tree (GET /regions, GET /regions-list) ────────────────────────────

var regionTree ttlEntry[[]models.Region]

func GetRegions() ([]models.Region, bool) {
	return regionTree.get(TTL)
}

func SetRegions(regions []models.Region) {
	regionTree.put(regions)
}

// ── Camera triples (every */options picker) ──────────────────────────────────

var cameraRecords ttlEntry[[]models.CameraRecord]

func GetCameraRecords() ([]models.CameraRecord, bool) {
	return cameraRecords.get(TTL)
}

func SetCameraRecords(records []models.CameraRecord) {
	cameraRecords.put(records)
}

// ── Active camera feeds (GET /dashboard/cameras) ─────────────────────────────

var feeds ttlEntry[[]models.CameraFeed]

func GetFeeds() ([]models.CameraFeed, bool) {
	return feeds.get(TTL)
}

func SetFeeds(data []models.CameraFeed) {
	feeds.put(data)
}

// ── Invalidate (call on any region, sub-region or camera mutation) ───────────

func Invalidate() {
	regionTree.clear()
	cameraRecords.clear()
	feeds.clear()
}
