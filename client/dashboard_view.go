package client

import (
	"context"
	"sync"

	"github.com/Asadel-Surveillance/asadel-console/filter"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/google/uuid"
)

// DashboardView is the live camera screen. Picking a region or sub-region
// jumps straight to the first option below it so a feed is always showing
// when one exists.
type DashboardView struct {
	client *Client

	mu      sync.RWMutex
	cameras []models.CameraFeed
	sel     filter.Selection
	camera  uuid.UUID
}

func NewDashboardView(c *Client) *DashboardView {
	return &DashboardView{client: c}
}

// Load fetches the active cameras and keeps the selection when it still applies
func (v *DashboardView) Load(ctx context.Context) error {
	cameras, err := v.client.DashboardCameras(ctx)
	if err != nil {
		return err
	}
	v.SetCameras(cameras)
	return nil
}

func (v *DashboardView) SetCameras(cameras []models.CameraFeed) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cameras = cameras
	v.sel = models.FeedCascade.Prune(cameras, filter.Selection{Region: v.sel.Region, SubRegion: v.sel.SubRegion})
	switch {
	case v.sel.Region == "":
		v.selectRegionLocked(first(models.FeedCascade.RegionOptions(cameras)))
	case v.sel.SubRegion == "":
		v.selectSubRegionLocked(first(models.FeedCascade.SubRegionOptions(cameras, v.sel.Region)))
	case !v.cameraVisibleLocked(v.camera):
		v.pickFirstCameraLocked()
	default:
		v.setCameraLocked(v.camera)
	}
}

func (v *DashboardView) SelectRegion(region string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectRegionLocked(region)
}

func (v *DashboardView) SelectSubRegion(subRegion string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectSubRegionLocked(subRegion)
}

// SelectCamera switches the feed; false when the camera is not in the current sub-region
func (v *DashboardView) SelectCamera(id uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.cameraVisibleLocked(id) {
		return false
	}
	v.setCameraLocked(id)
	return true
}

func (v *DashboardView) Selection() filter.Selection {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sel
}

// Options lists the dropdown values for the current selection
func (v *DashboardView) Options() filter.Options {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return models.FeedCascade.Options(v.cameras, v.sel)
}

// VisibleCameras are the cameras of the selected sub-region, or of the
// whole region when no sub-region is picked. Nothing without a region.
func (v *DashboardView) VisibleCameras() []models.CameraFeed {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visibleLocked()
}

func (v *DashboardView) SelectedCamera() (models.CameraFeed, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, cam := range v.cameras {
		if cam.ID == v.camera && v.camera != uuid.Nil {
			return cam, true
		}
	}
	return models.CameraFeed{}, false
}

// FeedURL is the stream address of the selected camera, or "" when none is picked
func (v *DashboardView) FeedURL() string {
	cam, ok := v.SelectedCamera()
	if !ok {
		return ""
	}
	return v.client.FeedURL(cam.ID)
}

func (v *DashboardView) selectRegionLocked(region string) {
	v.sel.Select(filter.LevelRegion, region)
	v.camera = uuid.Nil
	if region == "" {
		return
	}
	v.selectSubRegionLocked(first(models.FeedCascade.SubRegionOptions(v.cameras, region)))
}

func (v *DashboardView) selectSubRegionLocked(subRegion string) {
	v.sel.Select(filter.LevelSubRegion, subRegion)
	v.camera = uuid.Nil
	if v.sel.SubRegion == "" {
		return
	}
	v.pickFirstCameraLocked()
}

func (v *DashboardView) pickFirstCameraLocked() {
	v.camera = uuid.Nil
	v.sel.Leaf = ""
	if v.sel.SubRegion == "" {
		return
	}
	if visible := v.visibleLocked(); len(visible) > 0 {
		v.setCameraLocked(visible[0].ID)
	}
}

func (v *DashboardView) setCameraLocked(id uuid.UUID) {
	v.camera = id
	for _, cam := range v.cameras {
		if cam.ID == id {
			v.sel.Select(filter.LevelLeaf, cam.Name)
			return
		}
	}
}

func (v *DashboardView) visibleLocked() []models.CameraFeed {
	if v.sel.Region == "" {
		return []models.CameraFeed{}
	}
	return models.FeedCascade.Apply(v.cameras, filter.Selection{Region: v.sel.Region, SubRegion: v.sel.SubRegion})
}

func (v *DashboardView) cameraVisibleLocked(id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	for _, cam := range v.visibleLocked() {
		if cam.ID == id {
			return true
		}
	}
	return false
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
