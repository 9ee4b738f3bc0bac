package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile represents a game profile stored in the database. Bindings map
// action names to key identifiers.
type Profile struct {
	ID        string
	Name      string
	Builtin   bool
	Bindings  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRepository provides CRUD operations for profiles and their bindings.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new profile and its bindings in one transaction.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO profiles (id, name, builtin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Builtin, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := insertBindings(tx, p.ID, p.Bindings); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a profile by its ID, bindings included.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	return r.get(`SELECT id, name, builtin, created_at, updated_at
		 FROM profiles WHERE id = ?`, id)
}

// GetByName retrieves a profile by its name, bindings included.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	return r.get(`SELECT id, name, builtin, created_at, updated_at
		 FROM profiles WHERE name = ?`, name)
}

func (r *ProfileRepository) get(query, arg string) (*Profile, error) {
	p := &Profile{}

	err := r.db.QueryRow(query, arg).
		Scan(&p.ID, &p.Name, &p.Builtin, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Bindings, err = r.loadBindings(p.ID)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// List retrieves all profiles with their bindings, ordered by name.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, builtin, created_at, updated_at
		 FROM profiles ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Builtin, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range profiles {
		p.Bindings, err = r.loadBindings(p.ID)
		if err != nil {
			return nil, err
		}
	}

	return profiles, nil
}

// Update replaces a profile's name and bindings.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE profiles SET name = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM profile_bindings WHERE profile_id = ?`, p.ID); err != nil {
		return err
	}
	if err := insertBindings(tx, p.ID, p.Bindings); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a profile by its ID. Bindings cascade.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *ProfileRepository) loadBindings(profileID string) (map[string]string, error) {
	rows, err := r.db.Query(
		`SELECT action, key FROM profile_bindings WHERE profile_id = ?`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load bindings: %w", err)
	}
	defer rows.Close()

	bindings := make(map[string]string)
	for rows.Next() {
		var action, key string
		if err := rows.Scan(&action, &key); err != nil {
			return nil, err
		}
		bindings[action] = key
	}

	return bindings, rows.Err()
}

func insertBindings(tx *sql.Tx, profileID string, bindings map[string]string) error {
	for action, key := range bindings {
		_, err := tx.Exec(
			`INSERT INTO profile_bindings (profile_id, action, key) VALUES (?, ?, ?)`,
			profileID, action, key,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
