package v1

import "github.com/shenikar/crowd_alert_system/internal/models"

// ModelToParticipantResponse преобразует доменную модель в DTO для ответа
func ModelToParticipantResponse(model *models.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		ID:           model.ID,
		Name:         model.Name,
		Phone:        model.Phone,
		RegisteredAt: model.RegisteredAt,
	}
}

// ModelToLocationResponse преобразует результат классификации в DTO
func ModelToLocationResponse(model *models.LocationResult) *LocationResponse {
	return &LocationResponse{
		PingID:        model.PingID,
		Accepted:      model.Accepted,
		CrowdAlert:    model.IsCrowded,
		NeighborCount: model.NeighborCount,
		Message:       model.AlertMessage,
		ExitLink:      model.ExitLink,
	}
}

// ModelToSnapshotResponse преобразует сводку в DTO, participants никогда не null
func ModelToSnapshotResponse(model *models.CrowdSnapshot) *SnapshotResponse {
	participants := make([]ParticipantStatusResponse, len(model.Participants))
	for i, p := range model.Participants {
		participants[i] = ParticipantStatusResponse{
			ID:            p.ID,
			Name:          p.Name,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			IsCrowded:     p.IsCrowded,
			NeighborCount: p.NeighborCount,
		}
	}
	return &SnapshotResponse{
		Participants: participants,
		TotalActive:  model.TotalActive,
		CrowdZones:   model.CrowdZones,
		GeneratedAt:  model.GeneratedAt,
	}
}
