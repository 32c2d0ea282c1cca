package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому хранится *gorm.DB в gin.Context
	DBContextKey = contextKey("db")

	// UserIDKey - id сотрудника из сессии
	UserIDKey = contextKey("userID")

	// RoleKey - роль из сессии (employee, admin, superadmin)
	RoleKey = contextKey("role")
)
