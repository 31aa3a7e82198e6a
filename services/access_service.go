package services

import (
	"fmt"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/models"
)

// moduleAliases maps a normalized label (lower case, "&" read as "and",
// single spaces) onto its module. Older accounts carry labels such as
// "Reports & Analytics" or "Live Feed".
var moduleAliases = map[string]string{
	"dashboard":             models.ModuleDashboard,
	"live feed":             models.ModuleDashboard,
	"reports and analytics": models.ModuleReportsAnalytics,
	"reports":               models.ModuleReportsAnalytics,
	"analytics":             models.ModuleReportsAnalytics,
	"log reports":           models.ModuleReportsAnalytics,
	"user management":       models.ModuleUserManagement,
	"area management":       models.ModuleAreaManagement,
	"camera management":     models.ModuleCameraManagement,
}

// NormalizeModule maps a free-text access label onto a module.
// The second result is false for labels that match no module.
func NormalizeModule(label string) (string, bool) {
	key := strings.ToLower(label)
	key = strings.ReplaceAll(key, "&", " and ")
	key = strings.Join(strings.Fields(key), " ")
	m, ok := moduleAliases[key]
	return m, ok
}

// NormalizeAccess canonicalizes and de-duplicates an access list, keeping
// module order. Unknown labels are an error.
func NormalizeAccess(labels []string) ([]string, error) {
	granted := make(map[string]bool, len(labels))
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			continue
		}
		m, ok := NormalizeModule(label)
		if !ok {
			return nil, fmt.Errorf("Unknown access module: %s", strings.TrimSpace(label))
		}
		granted[m] = true
	}

	out := make([]string, 0, len(granted))
	for _, m := range models.AllModules {
		if granted[m] {
			out = append(out, m)
		}
	}
	return out, nil
}

// HasModuleAccess reports whether role/access grant module. Admins hold every module.
// Stored labels are normalized again so accounts written before
// normalization keep working.
func HasModuleAccess(role string, access []string, module string) bool {
	if models.NormalizeRole(role) == models.RoleAdmin {
		return true
	}
	for _, label := range access {
		if m, ok := NormalizeModule(label); ok && m == module {
			return true
		}
	}
	return false
}

// CanViewCamera applies a camera's access level to a viewer
func CanViewCamera(role, cameraAccess string) bool {
	if models.NormalizeRole(role) == models.RoleAdmin {
		return true
	}
	return models.NormalizeCameraAccess(cameraAccess) != models.CameraAccessAdmin
}
