package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhinowatch/rhino-watch-sa/internal/models"
	"github.com/rhinowatch/rhino-watch-sa/migrations"
	"github.com/rhinowatch/rhino-watch-sa/pkg/storage"
)

// newTestDB opens an in-memory SQLite database with the embedded schema
// applied. A single connection keeps the in-memory database alive across
// queries.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := migrations.FS.ReadFile("sqlite/000001_init.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

func insertIncident(t *testing.T, db *sql.DB, title, province, dateOccurred string, verified bool, rhinoCount int) {
	t.Helper()

	v := 0
	if verified {
		v = 1
	}
	_, err := db.Exec(
		`INSERT INTO incidents (title, description, location, province, date_occurred, source, verified, rhino_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		title, "description", "location", province, dateOccurred, "source", v, rhinoCount,
	)
	require.NoError(t, err)
}

func TestIncidentRepository_List_OrderedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	insertIncident(t, db, "oldest", "Limpopo", "2024-01-01", false, 1)
	insertIncident(t, db, "newest", "Mpumalanga", "2024-03-01", true, 2)
	insertIncident(t, db, "middle", "Limpopo", "2024-02-01", true, 0)

	incidents, err := repo.List(context.Background(), models.IncidentFilter{})
	require.NoError(t, err)
	require.Len(t, incidents, 3)
	assert.Equal(t, "newest", incidents[0].Title)
	assert.Equal(t, "middle", incidents[1].Title)
	assert.Equal(t, "oldest", incidents[2].Title)
}

func TestIncidentRepository_List_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	insertIncident(t, db, "limpopo verified", "Limpopo", "2024-01-01", true, 1)
	insertIncident(t, db, "limpopo unverified", "Limpopo", "2024-01-02", false, 1)
	insertIncident(t, db, "mpumalanga verified", "Mpumalanga", "2024-01-03", true, 1)

	ctx := context.Background()

	byProvince, err := repo.List(ctx, models.IncidentFilter{Province: "Limpopo"})
	require.NoError(t, err)
	require.Len(t, byProvince, 2)
	for _, inc := range byProvince {
		assert.Equal(t, "Limpopo", inc.Province)
	}

	verified := true
	byVerified, err := repo.List(ctx, models.IncidentFilter{Verified: &verified})
	require.NoError(t, err)
	require.Len(t, byVerified, 2)
	for _, inc := range byVerified {
		assert.True(t, inc.Verified)
	}

	unverified := false
	both, err := repo.List(ctx, models.IncidentFilter{Province: "Limpopo", Verified: &unverified})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "limpopo unverified", both[0].Title)

	none, err := repo.List(ctx, models.IncidentFilter{Province: "Gauteng"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIncidentRepository_List_Limit(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	insertIncident(t, db, "a", "Limpopo", "2024-01-01", false, 1)
	insertIncident(t, db, "b", "Limpopo", "2024-01-02", false, 1)
	insertIncident(t, db, "c", "Limpopo", "2024-01-03", false, 1)

	incidents, err := repo.List(context.Background(), models.IncidentFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	assert.Equal(t, "c", incidents[0].Title)
	assert.Equal(t, "b", incidents[1].Title)
}

func TestIncidentRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	insertIncident(t, db, "only one", "Limpopo", "2024-01-15", true, 2)

	incident, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), incident.ID)
	assert.Equal(t, "only one", incident.Title)
	assert.True(t, incident.Verified)
	assert.Equal(t, 2, incident.RhinoCount)
	assert.Equal(t, "2024-01-15", incident.DateOccurred.Format("2006-01-02"))
	assert.False(t, incident.CreatedAt.IsZero())
}

func TestIncidentRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncidentRepository_GetByID_NullOptionalColumns(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	_, err := db.Exec(`INSERT INTO incidents (title) VALUES ('bare')`)
	require.NoError(t, err)

	incident, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "bare", incident.Title)
	assert.Empty(t, incident.Description)
	assert.Empty(t, incident.Province)
	assert.True(t, incident.DateOccurred.IsZero())
	assert.Equal(t, 1, incident.RhinoCount) // column default
}

func TestIncidentRepository_GetStatistics(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	insertIncident(t, db, "a", "Limpopo", "2024-01-01", true, 2)
	insertIncident(t, db, "b", "Limpopo", "2024-01-02", false, 1)
	insertIncident(t, db, "c", "Mpumalanga", "2024-01-03", true, 0)

	stats, err := repo.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalIncidents)
	assert.Equal(t, 2, stats.VerifiedIncidents)
	assert.Equal(t, 3, stats.TotalRhinosAffected)
	assert.Equal(t, map[string]int{"Limpopo": 2, "Mpumalanga": 1}, stats.Provinces)
	assert.False(t, stats.LastUpdated.IsZero())

	total := 0
	for _, count := range stats.Provinces {
		total += count
	}
	assert.Equal(t, stats.TotalIncidents, total)
}

func TestIncidentRepository_GetStatistics_EmptyTable(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	stats, err := repo.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalIncidents)
	assert.Equal(t, 0, stats.VerifiedIncidents)
	assert.Equal(t, 0, stats.TotalRhinosAffected)
	assert.Equal(t, 0, stats.RecentIncidents)
	assert.Empty(t, stats.Provinces)
}

// Rows with a NULL province still count toward the per-province breakdown,
// so the map always sums to the total.
func TestIncidentRepository_GetStatistics_NullProvince(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	insertIncident(t, db, "a", "Limpopo", "2024-01-01", false, 1)
	_, err := db.Exec(`INSERT INTO incidents (title) VALUES ('no province')`)
	require.NoError(t, err)

	stats, err := repo.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalIncidents)
	assert.Equal(t, map[string]int{"Limpopo": 1, "": 1}, stats.Provinces)
}

// The recency window spans the 30 days up to and including today.
func TestIncidentRepository_GetStatistics_RecentWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewIncidentRepository(db, storage.SQLite())

	today := time.Now().UTC()
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format("2006-01-02")
	}

	insertIncident(t, db, "today", "Limpopo", day(0), false, 1)
	insertIncident(t, db, "boundary", "Limpopo", day(-30), false, 1)
	insertIncident(t, db, "outside", "Limpopo", day(-31), false, 1)

	stats, err := repo.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.RecentIncidents)
}
