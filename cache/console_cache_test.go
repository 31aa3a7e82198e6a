package cache

import (
	"testing"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/models"
)

func TestSetGetInvalidate(t *testing.T) {
	Invalidate()
	if _, ok := GetRegions(); ok {
		t.Fatal("empty cache reported a hit")
	}

	SetRegions([]models.Region{{Name: "Building A"}})
	SetFeeds([]models.CameraFeed{{Name: "Lobby"}})
	SetCameraRecords([]models.CameraRecord{{Name: "Lobby", RegionName: "Building A"}})

	regions, ok := GetRegions()
	if !ok || len(regions) != 1 || regions[0].Name != "Building A" {
		t.Fatalf("GetRegions = %v, %v", regions, ok)
	}
	if f, ok := GetFeeds(); !ok || f[0].Name != "Lobby" {
		t.Fatalf("GetFeeds = %v, %v", f, ok)
	}

	Invalidate()
	if _, ok := GetFeeds(); ok {
		t.Fatal("feeds survived Invalidate")
	}
	if _, ok := GetCameraRecords(); ok {
		t.Fatal("camera records survived Invalidate")
	}
}

func TestEntryExpires(t *testing.T) {
	var e ttlEntry[int]
	e.put(7)
	if v, ok := e.get(time.Minute); !ok || v != 7 {
		t.Fatalf("get = %d, %v", v, ok)
	}
	e.mu.Lock()
	e.fetchedAt = time.Now().Add(-2 * time.Minute)
	e.mu.Unlock()
	if _, ok := e.get(time.Minute); ok {
		t.Fatal("expired entry reported a hit")
	}
}
