package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	LeavePolicyHandler *LeavePolicyHandler
	HealthHandler      *HealthHandler
}
