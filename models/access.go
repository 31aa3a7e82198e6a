package models

// Console modules a user can be granted. These are the canonical labels
// stored in users.access_level.
const (
	ModuleDashboard        = "Dashboard"
	ModuleReportsAnalytics = "Reports and Analytics"
	ModuleUserManagement   = "User Management"
	ModuleAreaManagement   = "Area Management"
	ModuleCameraManagement = "Camera Management"
)

// AllModules lists every module in navigation order
var AllModules = []string{
	ModuleDashboard,
	ModuleReportsAnalytics,
	ModuleUserManagement,
	ModuleAreaManagement,
	ModuleCameraManagement,
}
