package rbac

import "time"

// Permission is an immutable catalog entry referenced by roles.
type Permission struct {
	ID          int64
	Name        string
	Category    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission names. The catalog is fixed and seeded at startup; route guards
// reference these constants.
const (
	PermCreateUsers          = "create_users"
	PermViewUsers            = "view_users"
	PermEditUsers            = "edit_users"
	PermDeleteUsers          = "delete_users"
	PermAssignRoles          = "assign_roles"
	PermManageRoles          = "manage_roles"
	PermViewRoles            = "view_roles"
	PermManageBranches       = "manage_branches"
	PermViewBranches         = "view_branches"
	PermConfigureBranch      = "configure_branch_settings"
	PermManageStudents       = "manage_students"
	PermViewStudents         = "view_students"
	PermManageFees           = "manage_fees"
	PermViewFeeReports       = "view_fee_reports"
	PermManageClasses        = "manage_classes"
	PermManageExams          = "manage_exams"
	PermManageSystemSettings = "manage_system_settings"
)

// CanonicalPermissions is the full seed-time catalog, grouped by category.
var CanonicalPermissions = []Permission{
	{Name: PermCreateUsers, Category: "User Management", Description: "Can create new users."},
	{Name: PermViewUsers, Category: "User Management", Description: "Can view user list and details."},
	{Name: PermEditUsers, Category: "User Management", Description: "Can edit user information."},
	{Name: PermDeleteUsers, Category: "User Management", Description: "Can delete users."},
	{Name: PermAssignRoles, Category: "User Management", Description: "Can assign roles to users."},
	{Name: PermManageRoles, Category: "Role Management", Description: "Can create, edit, delete roles and assign permissions."},
	{Name: PermViewRoles, Category: "Role Management", Description: "Can view roles and their permissions."},
	{Name: PermManageBranches, Category: "Branch Management", Description: "Can create, edit, delete branches."},
	{Name: PermViewBranches, Category: "Branch Management", Description: "Can view branch details."},
	{Name: PermConfigureBranch, Category: "Branch Management", Description: "Can configure settings for a specific branch."},
	{Name: PermManageStudents, Category: "Student Management", Description: "Can create, view, edit, delete student records."},
	{Name: PermViewStudents, Category: "Student Management", Description: "Can view student records."},
	{Name: PermManageFees, Category: "Fee Management", Description: "Can manage fee structures, categories, and payments."},
	{Name: PermViewFeeReports, Category: "Fee Management", Description: "Can view fee collection reports."},
	{Name: PermManageClasses, Category: "Academic Management", Description: "Can manage academic classes and sections."},
	{Name: PermManageExams, Category: "Academic Management", Description: "Can manage examinations, schedules, and results entry."},
	{Name: PermManageSystemSettings, Category: "System Administration", Description: "Can manage global system settings."},
}
