package roles

import (
	"time"

	"github.com/branchbuddy/branchbuddy/internal/rbac"
)

// Role is a named bundle of permissions. System-seeded roles carry
// IsDefault=true and are protected from modification and deletion.
type Role struct {
	ID          int64
	Name        string
	Description string
	IsDefault   bool
	Permissions []rbac.Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Canonical role names seeded at startup.
const (
	SuperAdminRoleName  = "Super Admin"
	BranchAdminRoleName = "Branch Admin"
	AccountantRoleName  = "Accountant"
	FrontDeskRoleName   = "Front Desk"
	TeacherRoleName     = "Teacher"
)

// DefaultRoleSeed describes one canonical role. A nil Permissions slice means
// "every permission in the catalog"; the seeder re-resolves it on each run so
// newly added permissions extend the set.
type DefaultRoleSeed struct {
	Name        string
	Description string
	Permissions []string
}

// DefaultRoles is the canonical seed set.
var DefaultRoles = []DefaultRoleSeed{
	{
		Name:        SuperAdminRoleName,
		Description: "Has all permissions and manages the entire system.",
		Permissions: nil,
	},
	{
		Name:        BranchAdminRoleName,
		Description: "Manages a specific branch operations, staff, and students.",
		Permissions: []string{
			rbac.PermViewUsers, rbac.PermEditUsers,
			rbac.PermAssignRoles,
			rbac.PermViewBranches, rbac.PermConfigureBranch,
			rbac.PermManageStudents, rbac.PermViewStudents,
			rbac.PermManageFees, rbac.PermViewFeeReports,
			rbac.PermManageClasses, rbac.PermManageExams,
		},
	},
	{
		Name:        AccountantRoleName,
		Description: "Manages fee collection, financial records, and reports for a branch.",
		Permissions: []string{rbac.PermManageFees, rbac.PermViewFeeReports, rbac.PermViewStudents},
	},
	{
		Name:        FrontDeskRoleName,
		Description: "Handles student admissions, inquiries, and basic administrative tasks for a branch.",
		Permissions: []string{rbac.PermViewStudents, rbac.PermManageStudents},
	},
	{
		Name:        TeacherRoleName,
		Description: "Manages class-specific activities, attendance, and student performance for a branch.",
		Permissions: []string{rbac.PermViewStudents},
	},
}
