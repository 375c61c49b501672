package shared

// shared types across the application

// Principal is the authenticated actor attached to every core operation.
// It is always passed explicitly; nothing reads it from ambient state.
type Principal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == "ADMIN"
}
