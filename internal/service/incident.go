package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rhinowatch/rhino-watch-sa/internal/models"
	"github.com/rhinowatch/rhino-watch-sa/internal/repository"
)

//go:generate mockgen -source=incident.go -destination=mocks/incident_mock.go -package=mocks

// IncidentRepository defines the store contract for incident reads.
type IncidentRepository interface {
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	GetByID(ctx context.Context, id int64) (*models.Incident, error)
	GetStatistics(ctx context.Context) (*models.Statistics, error)
}

// IncidentService defines the business logic contract for incident queries.
type IncidentService interface {
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	GetIncident(ctx context.Context, id int64) (*models.Incident, error)
	GetStatistics(ctx context.Context) (*models.Statistics, error)
}

type incidentService struct {
	repo   IncidentRepository
	logger *logrus.Logger
}

func NewIncidentService(repo IncidentRepository, logger *logrus.Logger) IncidentService {
	return &incidentService{
		repo:   repo,
		logger: logger,
	}
}

// ListIncidents returns incidents matching the filter, newest first.
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	if filter.Limit <= 0 {
		filter.Limit = repository.DefaultListLimit
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "ListIncidents",
		"province": filter.Province,
		"limit":    filter.Limit,
	})

	incidents, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Debug("Incidents listed successfully")
	return incidents, nil
}

// GetIncident fetches a single incident by ID.
func (s *incidentService) GetIncident(ctx context.Context, id int64) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug("Incident not found")
			return nil, ErrNotFound
		}
		log.WithError(err).Error("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	return incident, nil
}

// GetStatistics computes the dashboard aggregates.
func (s *incidentService) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "GetStatistics",
	})

	stats, err := s.repo.GetStatistics(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to get statistics from repository")
		return nil, fmt.Errorf("service: could not get statistics: %w", err)
	}

	return stats, nil
}
