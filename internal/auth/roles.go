package auth

import "hrportal_backend/internal/models"

// IsAdminRole - admin и superadmin управляют сотрудниками и политикой отпусков
func IsAdminRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleSuperAdmin
}

// CanViewEmployee - админ видит всех, сотрудник только себя
func CanViewEmployee(claims *Claims, employeeID string) bool {
	if claims == nil {
		return false
	}
	return IsAdminRole(claims.Role) || claims.UserID == employeeID
}
