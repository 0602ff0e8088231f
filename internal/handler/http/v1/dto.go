package v1

import (
	"time"
)

// LoginRequest DTO для входа
// @Description DTO для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse DTO с токеном сессии
// @Description DTO с токеном сессии
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse DTO пользователя сессии
// @Description DTO пользователя сессии
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// OnboardingResponse DTO флага онбординга
type OnboardingResponse struct {
	Onboarded bool `json:"onboarded"`
}

// LocationDTO координаты инцидента
type LocationDTO struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Title       string       `json:"title" validate:"required,min=2,max=255"`
	Description string       `json:"description" validate:"max=5000"`
	Type        string       `json:"type" validate:"max=100"`
	Vehicle     string       `json:"vehicle" validate:"max=100"`
	Team        string       `json:"team" validate:"max=100"`
	Signature   string       `json:"signature,omitempty" validate:"omitempty,max=2000000"`
	Status      string       `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress resolved"`
	Location    *LocationDTO `json:"location,omitempty" validate:"omitempty"`
	Images      []string     `json:"images,omitempty"`
	Videos      []string     `json:"videos,omitempty"`
	AssignedTo  string       `json:"assignedTo,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
}

// UpdateIncidentRequest DTO для частичного обновления инцидента.
// Отсутствующее поле не меняется.
// @Description DTO для частичного обновления инцидента
type UpdateIncidentRequest struct {
	Title       *string      `json:"title,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string      `json:"description,omitempty" validate:"omitempty,max=5000"`
	Type        *string      `json:"type,omitempty" validate:"omitempty,max=100"`
	Vehicle     *string      `json:"vehicle,omitempty" validate:"omitempty,max=100"`
	Team        *string      `json:"team,omitempty" validate:"omitempty,max=100"`
	Signature   *string      `json:"signature,omitempty" validate:"omitempty,max=2000000"`
	Status      *string      `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress resolved"`
	Location    *LocationDTO `json:"location,omitempty" validate:"omitempty"`
	Images      []string     `json:"images,omitempty"`
	Videos      []string     `json:"videos,omitempty"`
	AssignedTo  *string      `json:"assignedTo,omitempty"`
}

// TimelineEventResponse DTO события timeline
type TimelineEventResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Type        string                  `json:"type"`
	Vehicle     string                  `json:"vehicle"`
	Team        string                  `json:"team"`
	Signature   string                  `json:"signature,omitempty"`
	Status      string                  `json:"status"`
	SyncStatus  string                  `json:"syncStatus"`
	Location    *LocationDTO            `json:"location,omitempty"`
	Images      []string                `json:"images"`
	Videos      []string                `json:"videos"`
	Timeline    []TimelineEventResponse `json:"timeline"`
	UserID      string                  `json:"userId,omitempty"`
	AssignedTo  string                  `json:"assignedTo,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   *time.Time              `json:"updatedAt,omitempty"`
}

// CreateCommentRequest DTO для комментария
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// CommentResponse DTO комментария
type CommentResponse struct {
	ID         string    `json:"id"`
	IncidentID string    `json:"incidentId"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateUserRequest DTO для создания пользователя администратором
type CreateUserRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=255"`
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role,omitempty" validate:"omitempty,oneof=user chief admin"`
	Active *bool  `json:"active,omitempty"`
}

// UpdateUserRequest DTO для изменения пользователя
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Role   *string `json:"role,omitempty" validate:"omitempty,oneof=user chief admin"`
	Active *bool   `json:"active,omitempty"`
}

// AppUserResponse DTO пользователя приложения
type AppUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// PreferencesDTO настройки темы
type PreferencesDTO struct {
	Mode         string  `json:"mode" validate:"required,oneof=light dark highContrast"`
	HighContrast bool    `json:"highContrast"`
	FontScale    float64 `json:"fontScale" validate:"gte=0"`
}

// SetModeRequest DTO для смены режима темы
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=light dark highContrast"`
}

// SetFontScaleRequest DTO для смены масштаба шрифта
type SetFontScaleRequest struct {
	FontScale float64 `json:"fontScale" validate:"required,gt=0"`
}
