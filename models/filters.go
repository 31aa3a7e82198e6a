package models

import (
	"log"

	"github.com/Asadel-Surveillance/asadel-console/filter"
	"github.com/gin-gonic/gin"
)

// CascadeOptions is returned by every */options endpoint: the selection the
// server actually applied (stale values pruned) and the option lists under it.
type CascadeOptions struct {
	Selection filter.Selection `json:"selection"`
	Options   filter.Options   `json:"options"`
}

// CameraRecord is the flat (region, sub-region, camera) triple the
// camera and dashboard pickers cascade over
type CameraRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	RegionName    string `json:"region_name"`
	SubRegionName string `json:"sub_region_name"`
}

// CameraCascade is shared by the area, camera and dashboard option endpoints
var CameraCascade = filter.New(filter.Accessors[CameraRecord]{
	Region:    func(r CameraRecord) string { return r.RegionName },
	SubRegion: func(r CameraRecord) string { return r.SubRegionName },
	Leaf:      func(r CameraRecord) string { return r.Name },
})

// DetectionCascade drives the log report filters
var DetectionCascade = filter.New(filter.Accessors[DetectionRow]{
	Region:    func(r DetectionRow) string { return r.Region },
	SubRegion: func(r DetectionRow) string { return r.SubRegion },
	Leaf:      func(r DetectionRow) string { return r.CameraName },
})

// FeedCascade filters the live dashboard list
var FeedCascade = filter.New(filter.Accessors[CameraFeed]{
	Region:    func(f CameraFeed) string { return f.RegionName },
	SubRegion: func(f CameraFeed) string { return f.SubRegionName },
	Leaf:      func(f CameraFeed) string { return f.Name },
})

// SelectionFromQuery reads ?region=&sub_region=&camera= into a selection.
// ?level= names the dropdown that just changed; values sent below it are stale
// and dropped.
func SelectionFromQuery(c *gin.Context) filter.Selection {
	sel := filter.Selection{
		Region:    c.Query("region"),
		SubRegion: c.Query("sub_region"),
		Leaf:      c.Query("camera"),
	}
	if raw := c.Query("level"); raw != "" {
		level, err := filter.ParseLevel(raw)
		if err != nil {
			log.Printf("[filters] ignoring level: %v", err)
		} else {
			var changed filter.Selection
			for l := filter.LevelRegion; l <= level; l++ {
				changed.Select(l, sel.Get(l))
			}
			sel = changed
		}
	}
	if !sel.Valid() {
		log.Printf("[filters] dropping levels below an empty ancestor: %+v", sel)
	}
	return sel.Normalize()
}

// BuildCascadeOptions prunes sel against records and lists the options under it
func BuildCascadeOptions[T any](cascade *filter.Cascade[T], records []T, sel filter.Selection) CascadeOptions {
	sel = cascade.Prune(records, sel)
	return CascadeOptions{
		Selection: sel,
		Options:   cascade.Options(records, sel),
	}
}
