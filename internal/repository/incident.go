package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rhinowatch/rhino-watch-sa/internal/models"
	"github.com/rhinowatch/rhino-watch-sa/pkg/storage"
)

// DefaultListLimit applies when the caller supplies no limit.
const DefaultListLimit = 50

const incidentColumns = `id, title, description, location, province, date_occurred, date_reported, source, verified, rhino_count, created_at`

type IncidentRepository struct {
	db      *sql.DB
	dialect storage.Dialect
}

func NewIncidentRepository(db *sql.DB, dialect storage.Dialect) *IncidentRepository {
	return &IncidentRepository{
		db:      db,
		dialect: dialect,
	}
}

// List returns incidents matching every supplied filter, newest occurrence
// first. Absent filters are omitted from the statement entirely; all values,
// the limit included, are bound as parameters.
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	query := "SELECT " + incidentColumns + " FROM incidents WHERE 1=1"
	args := make([]any, 0, 3)

	if filter.Province != "" {
		query += " AND province = ?"
		args = append(args, filter.Province)
	}
	if filter.Verified != nil {
		query += " AND verified = ?"
		args = append(args, r.dialect.BoolValue(*filter.Verified))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query += " ORDER BY date_occurred DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// GetByID returns the incident with the given identifier, or ErrNotFound.
func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	query := r.dialect.Rebind("SELECT " + incidentColumns + " FROM incidents WHERE id = ?")

	incident, err := scanIncident(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// GetStatistics computes the dashboard aggregates in one logical unit. The
// recency window covers the 30 days up to and including today, using the
// dialect's own date arithmetic.
func (r *IncidentRepository) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{
		Provinces: make(map[string]int),
	}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM incidents").Scan(&stats.TotalIncidents); err != nil {
		return nil, fmt.Errorf("failed to count incidents: %w", err)
	}

	verifiedQuery := r.dialect.Rebind("SELECT COUNT(*) FROM incidents WHERE verified = ?")
	if err := r.db.QueryRowContext(ctx, verifiedQuery, r.dialect.BoolValue(true)).Scan(&stats.VerifiedIncidents); err != nil {
		return nil, fmt.Errorf("failed to count verified incidents: %w", err)
	}

	// COALESCE keeps the sum a zero, not a NULL, on an empty table.
	if err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(rhino_count), 0) FROM incidents").Scan(&stats.TotalRhinosAffected); err != nil {
		return nil, fmt.Errorf("failed to sum rhino counts: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT COALESCE(province, ''), COUNT(*) FROM incidents GROUP BY province")
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents by province: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var province string
		var count int
		if err := rows.Scan(&province, &count); err != nil {
			return nil, fmt.Errorf("failed to scan province row: %w", err)
		}
		stats.Provinces[province] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error province iteration: %w", err)
	}

	recentQuery := "SELECT COUNT(*) FROM incidents WHERE date_occurred >= " + r.dialect.RecentCutoff()
	if err := r.db.QueryRowContext(ctx, recentQuery).Scan(&stats.RecentIncidents); err != nil {
		return nil, fmt.Errorf("failed to count recent incidents: %w", err)
	}

	stats.LastUpdated = time.Now()
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (*models.Incident, error) {
	var (
		incident                                models.Incident
		description, location, province, source sql.NullString
		dateOccurred, dateReported, createdAt   sql.NullTime
	)
	if err := row.Scan(
		&incident.ID,
		&incident.Title,
		&description,
		&location,
		&province,
		&dateOccurred,
		&dateReported,
		&source,
		&incident.Verified,
		&incident.RhinoCount,
		&createdAt,
	); err != nil {
		return nil, err
	}

	incident.Description = description.String
	incident.Location = location.String
	incident.Province = province.String
	incident.Source = source.String
	incident.DateOccurred = dateOccurred.Time
	incident.DateReported = dateReported.Time
	incident.CreatedAt = createdAt.Time
	return &incident, nil
}
