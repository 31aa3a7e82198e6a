package user_controller

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Asadel-Surveillance/asadel-console/models"
)

func TestSplitAccessField(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"Dashboard", "User Management"}, []string{"Dashboard", "User Management"}},
		{[]string{`["Dashboard","Reports & Analytics"]`}, []string{"Dashboard", "Reports & Analytics"}},
		{[]string{"Dashboard,Area Management"}, []string{"Dashboard", "Area Management"}},
		{[]string{"Dashboard"}, []string{"Dashboard"}},
	}
	for _, tc := range cases {
		if got := SplitAccessField(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitAccessField(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRoleAndAccess(t *testing.T) {
	role, access, err := normalizeRoleAndAccess("admin", []string{"reports & analytics", "Dashboard", "dashboard"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("role = %q", role)
	}
	want := []string{models.ModuleDashboard, models.ModuleReportsAnalytics}
	if !reflect.DeepEqual(access, want) {
		t.Errorf("access = %q, want %q", access, want)
	}
}

func TestNormalizeRoleAndAccessErrors(t *testing.T) {
	if _, _, err := normalizeRoleAndAccess("superuser", []string{"Dashboard"}); !errors.Is(err, errInvalidRole) {
		t.Errorf("bad role: err = %v", err)
	}
	if _, _, err := normalizeRoleAndAccess("User", nil); !errors.Is(err, errAccessEmpty) {
		t.Errorf("no access: err = %v", err)
	}
	if _, _, err := normalizeRoleAndAccess("User", []string{"Billing"}); err == nil {
		t.Error("unknown module should fail")
	}
}
