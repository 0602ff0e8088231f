package v1

import "github.com/shenikar/fyren/internal/models"

// CreateRequestToIncident преобразует DTO создания в доменную модель
func CreateRequestToIncident(dto CreateIncidentRequest, userID string) *models.Incident {
	incident := &models.Incident{
		Title:       dto.Title,
		Description: dto.Description,
		Type:        dto.Type,
		Vehicle:     dto.Vehicle,
		Team:        dto.Team,
		Signature:   dto.Signature,
		Status:      models.IncidentStatus(dto.Status),
		Location:    locationToModel(dto.Location),
		Images:      dto.Images,
		Videos:      dto.Videos,
		UserID:      userID,
		AssignedTo:  dto.AssignedTo,
	}
	if dto.CreatedAt != nil {
		incident.CreatedAt = dto.CreatedAt.UTC()
	}
	return incident
}

// UpdateRequestToPatch преобразует DTO обновления в частичный патч
func UpdateRequestToPatch(dto UpdateIncidentRequest) models.IncidentPatch {
	patch := models.IncidentPatch{
		Title:       dto.Title,
		Description: dto.Description,
		Type:        dto.Type,
		Vehicle:     dto.Vehicle,
		Team:        dto.Team,
		Signature:   dto.Signature,
		Location:    locationToModel(dto.Location),
		Images:      dto.Images,
		Videos:      dto.Videos,
		AssignedTo:  dto.AssignedTo,
	}
	if dto.Status != nil {
		status := models.IncidentStatus(*dto.Status)
		patch.Status = &status
	}
	return patch
}

func locationToModel(dto *LocationDTO) *models.Location {
	if dto == nil {
		return nil
	}
	return &models.Location{Latitude: dto.Latitude, Longitude: dto.Longitude}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Type:        model.Type,
		Vehicle:     model.Vehicle,
		Team:        model.Team,
		Signature:   model.Signature,
		Status:      string(model.Status),
		SyncStatus:  string(model.SyncStatus),
		Images:      nonNil(model.Images),
		Videos:      nonNil(model.Videos),
		Timeline:    make([]TimelineEventResponse, len(model.Timeline)),
		UserID:      model.UserID,
		AssignedTo:  model.AssignedTo,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.Location != nil {
		resp.Location = &LocationDTO{Latitude: model.Location.Latitude, Longitude: model.Location.Longitude}
	}
	for i, event := range model.Timeline {
		resp.Timeline[i] = TimelineEventResponse(event)
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func ModelsToCommentResponses(comments []*models.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = CommentResponse(*comment)
	}
	return responses
}

func ModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

func ModelToAppUserResponse(user *models.AppUser) AppUserResponse {
	return AppUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

func ModelsToAppUserResponses(users []*models.AppUser) []AppUserResponse {
	responses := make([]AppUserResponse, len(users))
	for i, user := range users {
		responses[i] = ModelToAppUserResponse(user)
	}
	return responses
}

func UpdateUserRequestToPatch(dto UpdateUserRequest) models.AppUserPatch {
	patch := models.AppUserPatch{
		Name:   dto.Name,
		Email:  dto.Email,
		Active: dto.Active,
	}
	if dto.Role != nil {
		role := models.Role(*dto.Role)
		patch.Role = &role
	}
	return patch
}

func ModelToPreferencesDTO(prefs models.ThemePreferences) PreferencesDTO {
	return PreferencesDTO{
		Mode:         string(prefs.Mode),
		HighContrast: prefs.HighContrast,
		FontScale:    prefs.FontScale,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
