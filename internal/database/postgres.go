package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"property-manager/internal/models"
)

// PostgresStore is the raw-SQL PostgreSQL Store. Images are kept in a JSONB
// column instead of a child table.
type PostgresStore struct {
	conn *sql.DB
}

func NewPostgresStore(host, port, user, password, dbname string) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{conn: conn}, nil
}

func (s *PostgresStore) Close() error {
	return s.conn.Close()
}

// InitSchema creates the tables if they don't exist
func (s *PostgresStore) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS properties (
		id VARCHAR(36) PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL,

		-- Filter fields
		price BIGINT NOT NULL,
		area DECIMAL(10, 2) NOT NULL,
		type VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'AVAILABLE',

		images JSONB NOT NULL DEFAULT '[]',

		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price);
	CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(type);
	CREATE INDEX IF NOT EXISTS idx_properties_status ON properties(status);

	CREATE TABLE IF NOT EXISTS delete_logs (
		id SERIAL PRIMARY KEY,
		property_id VARCHAR(36) NOT NULL,
		title TEXT,
		deleted_at TIMESTAMP NOT NULL,
		reason VARCHAR(50) NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_delete_logs_deleted_at ON delete_logs(deleted_at);
	`
	_, err := s.conn.Exec(query)
	return err
}

const propertyColumns = "id, title, description, address, price, area, type, status, images, created_at, updated_at"

func (s *PostgresStore) ListProperties() ([]models.Property, error) {
	rows, err := s.conn.Query(`
		SELECT ` + propertyColumns + `
		FROM properties
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

func (s *PostgresStore) GetProperty(id string) (*models.Property, error) {
	row := s.conn.QueryRow(`
		SELECT `+propertyColumns+`
		FROM properties
		WHERE id = $1`, id)

	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) CreateProperty(in *models.PropertyInput) (*models.Property, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	property := in.ToProperty()
	property.ID = uuid.NewString()
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	imagesJSON, err := json.Marshal(property.Images)
	if err != nil {
		return nil, err
	}

	_, err = s.conn.Exec(`
		INSERT INTO properties (`+propertyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		property.ID, property.Title, property.Description, property.Address,
		property.Price, property.Area, property.Type, property.Status,
		imagesJSON, property.CreatedAt, property.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *PostgresStore) UpdateProperty(id string, patch *models.PropertyPatch) (*models.Property, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	property, err := s.GetProperty(id)
	if err != nil {
		return nil, err
	}

	patch.Apply(property)
	property.UpdatedAt = time.Now()

	imagesJSON, err := json.Marshal(property.Images)
	if err != nil {
		return nil, err
	}

	_, err = s.conn.Exec(`
		UPDATE properties SET
			title = $1,
			description = $2,
			address = $3,
			price = $4,
			area = $5,
			type = $6,
			status = $7,
			images = $8,
			updated_at = $9
		WHERE id = $10`,
		property.Title, property.Description, property.Address,
		property.Price, property.Area, property.Type, property.Status,
		imagesJSON, property.UpdatedAt, id)
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (s *PostgresStore) DeleteProperty(id string) error {
	property, err := s.GetProperty(id)
	if err != nil {
		return err
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(`
		INSERT INTO delete_logs (property_id, title, deleted_at, reason)
		VALUES ($1, $2, $3, $4)`,
		property.ID, property.Title, time.Now(), models.DeleteReasonManual)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) GetDashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{
		StatusCounts:      make(map[models.PropertyStatus]int64),
		TypeCounts:        make(map[models.PropertyType]int64),
		PriceDistribution: models.PriceBuckets(),
	}

	err := s.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(price), 0), COALESCE(AVG(area), 0)
		FROM properties`).
		Scan(&stats.Total, &stats.TotalPrice, &stats.AverageArea)
	if err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		stats.AveragePrice = stats.TotalPrice / stats.Total
	}

	rows, err := s.conn.Query(`SELECT status, COUNT(*) FROM properties GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status models.PropertyStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	typeRows, err := s.conn.Query(`SELECT type, COUNT(*) FROM properties GROUP BY type`)
	if err != nil {
		return nil, err
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var typ models.PropertyType
		var count int64
		if err := typeRows.Scan(&typ, &count); err != nil {
			return nil, err
		}
		stats.TypeCounts[typ] = count
	}
	if err := typeRows.Err(); err != nil {
		return nil, err
	}

	for i := range stats.PriceDistribution {
		b := &stats.PriceDistribution[i]
		err := s.conn.QueryRow(`
			SELECT COUNT(*) FROM properties
			WHERE price >= $1 AND price < $2`, b.MinPrice, b.MaxPrice).
			Scan(&b.Count)
		if err != nil {
			return nil, err
		}
	}

	return stats, nil
}

func (s *PostgresStore) RecentDeleteLogs(limit int) ([]models.DeleteLog, error) {
	rows, err := s.conn.Query(`
		SELECT id, property_id, title, deleted_at, reason
		FROM delete_logs
		ORDER BY deleted_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DeleteLog
	for rows.Next() {
		var entry models.DeleteLog
		if err := rows.Scan(&entry.ID, &entry.PropertyID, &entry.Title, &entry.DeletedAt, &entry.Reason); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (s *PostgresStore) PruneDeleteLogs(before time.Time) (int64, error) {
	result, err := s.conn.Exec(`DELETE FROM delete_logs WHERE deleted_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row scanner) (*models.Property, error) {
	var p models.Property
	var imagesJSON []byte

	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Address,
		&p.Price, &p.Area, &p.Type, &p.Status,
		&imagesJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, err
		}
	}
	return &p, nil
}
