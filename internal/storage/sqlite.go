// Package storage keeps the flight log in SQLite through the pure-Go
// modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages the SQLite database connection for the flight log.
type Store struct {
	db *sql.DB
}

// Flight is a single logged flight.
type Flight struct {
	ID        int64
	FlightID  string // UUID, assigned on save when empty
	SceneID   string
	Session   string // "local" or the SSH user
	Seed      int64
	Duration  time.Duration
	Distance  float64
	PeakSpeed float64
	Warps     int
	CreatedAt time.Time
}

// Open opens the flight log at path, creating the file, its directory and
// the schema as needed. A leading ~ is expanded to the home directory.
//
// SSH sessions log flights concurrently, so the connection waits on a busy
// database instead of failing and uses WAL journaling.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	s := &Store{db: db}
	if err := db.Ping(); err != nil {
		s.Close()
		return nil, fmt.Errorf("storage: cannot connect to %s: %w", path, err)
	}
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS flights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		flight_id TEXT NOT NULL UNIQUE,
		scene_id TEXT NOT NULL,
		session TEXT NOT NULL DEFAULT 'local',
		seed INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		distance REAL NOT NULL DEFAULT 0,
		peak_speed REAL NOT NULL DEFAULT 0,
		warps INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_flights_scene_id ON flights(scene_id);
	CREATE INDEX IF NOT EXISTS idx_flights_distance ON flights(scene_id, distance DESC);
`

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveFlight records a finished flight and returns the inserted row ID.
// A missing FlightID is filled with a fresh UUID; the stored value is
// written back into f.
func (s *Store) SaveFlight(f *Flight) (int64, error) {
	if f.FlightID == "" {
		f.FlightID = uuid.NewString()
	}
	if f.Session == "" {
		f.Session = "local"
	}

	result, err := s.db.Exec(
		`INSERT INTO flights
		 (flight_id, scene_id, session, seed, duration_ms, distance, peak_speed, warps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.FlightID, f.SceneID, f.Session, f.Seed, f.Duration.Milliseconds(),
		f.Distance, f.PeakSpeed, f.Warps,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save flight: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	f.ID = id

	return id, nil
}

const flightColumns = `id, flight_id, scene_id, session, seed, duration_ms, distance, peak_speed, warps, created_at`

// RecentFlights returns the most recent flights, newest first.
// An empty sceneID returns flights of every scene.
func (s *Store) RecentFlights(sceneID string, limit int) ([]Flight, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+flightColumns+`
		 FROM flights
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flights: %w", err)
	}
	defer rows.Close()

	var flights []Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return flights, nil
}

// LongestFlight returns the flight with the greatest distance for a scene,
// or nil when the scene has no flights.
func (s *Store) LongestFlight(sceneID string) (*Flight, error) {
	row := s.db.QueryRow(
		`SELECT `+flightColumns+`
		 FROM flights
		 WHERE scene_id = ?
		 ORDER BY distance DESC, id ASC
		 LIMIT 1`,
		sceneID,
	)

	f, err := scanFlight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FlightByID looks up a flight by its UUID, or returns nil when absent.
func (s *Store) FlightByID(flightID string) (*Flight, error) {
	row := s.db.QueryRow(
		`SELECT `+flightColumns+` FROM flights WHERE flight_id = ?`,
		flightID,
	)

	f, err := scanFlight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ClearFlights deletes all flights for the given scene, or every flight
// when sceneID is empty.
func (s *Store) ClearFlights(sceneID string) error {
	var err error
	if sceneID == "" {
		_, err = s.db.Exec("DELETE FROM flights")
	} else {
		_, err = s.db.Exec("DELETE FROM flights WHERE scene_id = ?", sceneID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear flights: %w", err)
	}
	return nil
}

// SceneStats contains aggregated statistics for a scene.
type SceneStats struct {
	SceneID       string
	Flights       int
	TotalDistance float64
	BestDistance  float64
	TopSpeed      float64
	TotalTime     time.Duration
	LastFlown     time.Time
}

// AllSceneStats retrieves statistics for every scene that has been flown.
func (s *Store) AllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), SUM(distance), MAX(distance), MAX(peak_speed),
		        SUM(duration_ms), MAX(created_at)
		 FROM flights
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var totalMs int64
		var lastFlown any
		if err := rows.Scan(&st.SceneID, &st.Flights, &st.TotalDistance, &st.BestDistance,
			&st.TopSpeed, &totalMs, &lastFlown); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.TotalTime = time.Duration(totalMs) * time.Millisecond
		st.LastFlown = parseTime(lastFlown)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFlight(row scanner) (Flight, error) {
	var f Flight
	var durationMs int64
	var createdAt any
	err := row.Scan(&f.ID, &f.FlightID, &f.SceneID, &f.Session, &f.Seed,
		&durationMs, &f.Distance, &f.PeakSpeed, &f.Warps, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return f, err
	}
	if err != nil {
		return f, fmt.Errorf("storage: cannot scan flight: %w", err)
	}
	f.Duration = time.Duration(durationMs) * time.Millisecond
	f.CreatedAt = parseTime(createdAt)
	return f, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
