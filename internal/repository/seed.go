package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rhinowatch/rhino-watch-sa/pkg/storage"
)

// Seeded admin credentials. The hash is produced at seed time so the
// password below always authenticates against the stored row.
const (
	SeedAdminUsername = "admin"
	SeedAdminEmail    = "admin@rhinowatchsa.org"
	SeedAdminPassword = "RhinoWatch2025!"
	seedAdminRole     = "admin"
)

type seedIncident struct {
	title        string
	description  string
	location     string
	province     string
	dateOccurred string
	source       string
	verified     bool
	rhinoCount   int
}

var seedIncidents = []seedIncident{
	{"Rhino Poaching Incident - Kruger National Park", "Two rhinos found dead with horns removed", "Kruger National Park", "Mpumalanga", "2024-01-15", "DFFE Report", true, 2},
	{"Suspected Poaching Activity - Hluhluwe-iMfolozi", "Suspicious activity reported by rangers", "Hluhluwe-iMfolozi Park", "KwaZulu-Natal", "2024-01-20", "SANParks Alert", false, 1},
	{"Rhino Carcass Discovered - Pilanesberg", "Adult rhino found deceased, investigation ongoing", "Pilanesberg National Park", "North West", "2024-01-25", "Park Rangers", true, 1},
	{"Poaching Attempt Thwarted - Marakele", "Rangers intercepted poachers, no rhinos harmed", "Marakele National Park", "Limpopo", "2024-02-01", "Anti-Poaching Unit", true, 0},
	{"Rhino Monitoring Alert - Addo Elephant Park", "Increased security after suspicious activity", "Addo Elephant National Park", "Eastern Cape", "2024-02-05", "SANParks", false, 0},
}

// Seeder inserts the fixed demo dataset into a fresh database. Each table is
// seeded at most once: a table with any rows is left untouched.
type Seeder struct {
	db      *sql.DB
	dialect storage.Dialect
	logger  *logrus.Logger
}

func NewSeeder(db *sql.DB, dialect storage.Dialect, logger *logrus.Logger) *Seeder {
	return &Seeder{
		db:      db,
		dialect: dialect,
		logger:  logger,
	}
}

// Seed populates the incidents and users tables if they are empty. The
// check and the inserts share one transaction per table, so seed rows are
// either fully present or fully absent.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedIncidents(ctx); err != nil {
		return fmt.Errorf("failed to seed incidents: %w", err)
	}
	if err := s.seedAdminUser(ctx); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	return nil
}

func (s *Seeder) seedIncidents(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM incidents").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	insert := s.dialect.Rebind(`
		INSERT INTO incidents (title, description, location, province, date_occurred, source, verified, rhino_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, inc := range seedIncidents {
		if _, err := tx.ExecContext(ctx, insert,
			inc.title,
			inc.description,
			inc.location,
			inc.province,
			inc.dateOccurred,
			inc.source,
			s.dialect.BoolValue(inc.verified),
			inc.rhinoCount,
		); err != nil {
			return err
		}
	}

	s.logger.WithField("count", len(seedIncidents)).Info("Seeded sample incidents")
	return tx.Commit()
}

func (s *Seeder) seedAdminUser(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	insert := s.dialect.Rebind(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES (?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, insert, SeedAdminUsername, SeedAdminEmail, string(hash), seedAdminRole); err != nil {
		return err
	}

	s.logger.WithField("username", SeedAdminUsername).Info("Seeded admin user")
	return tx.Commit()
}
