package v1

import "github.com/rhinowatch/rhino-watch-sa/internal/models"

// ModelToIncidentResponse converts the domain model into the response DTO.
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:           model.ID,
		Title:        model.Title,
		Description:  model.Description,
		Location:     model.Location,
		Province:     model.Province,
		DateOccurred: model.DateOccurred.Format("2006-01-02"),
		DateReported: model.DateReported,
		Source:       model.Source,
		Verified:     model.Verified,
		RhinoCount:   model.RhinoCount,
		CreatedAt:    model.CreatedAt,
	}
}

// ModelsToIncidentResponses converts a slice of models into response DTOs.
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToUserResponse converts a user into its public summary.
func ModelToUserResponse(model *models.User) UserResponse {
	return UserResponse{
		ID:       model.ID,
		Username: model.Username,
		Role:     model.Role,
	}
}
