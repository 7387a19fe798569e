package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
)

// ErrorResponse represents a generic error payload with trace ID for
// debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// IDResponse returns the identifier of a freshly created record.
type IDResponse struct {
	ID int `json:"id"`
}

// ListResponse wraps a paged collection with its pre-paging total.
type ListResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the permission snapshot it
// was minted from.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
	Role  RoleDetail  `json:"role"`
}

// RegisterRequest defines the payload for account creation.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	MaxRetry int    `json:"max_retry"`
	RoleID   int    `json:"role_id"`
}

// ChangePasswordRequest defines the payload for the password change flow.
// The acting identity always comes from the session token.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ResetPasswordRequest defines the payload for the email-based reset flow.
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendCodeRequest defines the payload for issuing a verification code.
type SendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendCodeResponse echoes the issued code for delivery to the user.
type SendCodeResponse struct {
	Code string `json:"code"`
}

// VerifyCodeRequest defines the payload for checking a verification code.
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// UserSummary describes a user as returned by the API. The password hash
// never leaves the service.
type UserSummary struct {
	ID       int               `json:"id"`
	Username string            `json:"username"`
	FullName string            `json:"full_name"`
	Email    string            `json:"email"`
	Status   domain.UserStatus `json:"status"`
	MaxRetry int               `json:"max_retry"`
	Retry    int               `json:"retry"`
	RoleID   int               `json:"role_id,omitempty"`
	RoleName string            `json:"role_name,omitempty"`
}

// UserRequest defines the payload for user create/update. Password may be
// the keep-password sentinel on update to leave the stored hash untouched.
type UserRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Status   string `json:"status"`
	MaxRetry int    `json:"max_retry"`
	RoleID   int    `json:"role_id"`
}

// RoleRequest defines the payload for role create/update.
type RoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CanView     bool   `json:"can_view"`
	CanCreate   bool   `json:"can_create"`
	CanUpdate   bool   `json:"can_update"`
	CanDelete   bool   `json:"can_delete"`
	MenuIDs     []int  `json:"menu_ids"`
}

// RoleSummary describes a role in listings.
type RoleSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CanView     bool   `json:"can_view"`
	CanCreate   bool   `json:"can_create"`
	CanUpdate   bool   `json:"can_update"`
	CanDelete   bool   `json:"can_delete"`
}

// RoleDetail is a role joined with its accessible menus.
type RoleDetail struct {
	RoleSummary
	Menus []MenuSummary `json:"menus"`
}

// MenuRequest defines the payload for menu create/update.
type MenuRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Level1      *string `json:"level1"`
	Level2      *string `json:"level2"`
	Level3      *string `json:"level3"`
	Level4      *string `json:"level4"`
	Icon        *string `json:"icon"`
	URL         string  `json:"url" binding:"required"`
}

// MenuSummary describes a menu entry.
type MenuSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Level1      *string `json:"level1,omitempty"`
	Level2      *string `json:"level2,omitempty"`
	Level3      *string `json:"level3,omitempty"`
	Level4      *string `json:"level4,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	URL         string  `json:"url"`
}

// ProductRequest defines the payload for product create/update.
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// ProductSummary describes a product.
type ProductSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// HealthResponse reports liveness details.
type HealthResponse struct {
	Status    string `json:"status"`
	StartedAt string `json:"started_at"`
}

func toUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Status:   user.Status,
		MaxRetry: user.MaxRetry,
		Retry:    user.Retry,
	}
}

func toUserWithRoleSummary(row port.UserWithRole) UserSummary {
	summary := toUserSummary(row.User)
	summary.RoleID = row.RoleID
	summary.RoleName = row.RoleName
	return summary
}

func toRoleSummary(role domain.Role) RoleSummary {
	return RoleSummary{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		CanView:     role.CanView,
		CanCreate:   role.CanCreate,
		CanUpdate:   role.CanUpdate,
		CanDelete:   role.CanDelete,
	}
}

func toRoleDetail(role domain.RoleWithMenus) RoleDetail {
	detail := RoleDetail{
		RoleSummary: toRoleSummary(role.Role),
		Menus:       make([]MenuSummary, 0, len(role.Menus)),
	}
	for _, menu := range role.Menus {
		detail.Menus = append(detail.Menus, toMenuSummary(menu))
	}
	return detail
}

func toMenuSummary(menu domain.Menu) MenuSummary {
	return MenuSummary{
		ID:          menu.ID,
		Name:        menu.Name,
		Description: menu.Description,
		Level1:      menu.Level1,
		Level2:      menu.Level2,
		Level3:      menu.Level3,
		Level4:      menu.Level4,
		Icon:        menu.Icon,
		URL:         menu.URL,
	}
}

func toProductSummary(product domain.Product) ProductSummary {
	return ProductSummary{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
	}
}
