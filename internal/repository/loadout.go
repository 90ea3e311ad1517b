package repository

import (
	"database/sql"
	"fmt"

	"github.com/mgiraldo/contrack/internal/models"
)

type LoadoutStore struct {
	db *sql.DB
}

func NewLoadoutStore(db *sql.DB) *LoadoutStore {
	return &LoadoutStore{db: db}
}

// Create adds a new empty loadout. It fails if the name is taken.
func (s *LoadoutStore) Create(name string) error {
	existing, err := s.get(name)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("loadout '%s' already exists", name)
	}

	_, err = s.db.Exec("INSERT INTO loadouts (name) VALUES (?)", name)
	return err
}

func (s *LoadoutStore) List() ([]models.Loadout, error) {
	rows, err := s.db.Query(`
		SELECT l.id, l.name, l.is_default,
		       (SELECT COUNT(*) FROM loadout_rules lr WHERE lr.loadout_id = l.id),
		       (SELECT COUNT(*) FROM loadout_prompts lp WHERE lp.loadout_id = l.id)
		FROM loadouts l
		ORDER BY l.is_default DESC, l.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loadouts []models.Loadout
	for rows.Next() {
		var l models.Loadout
		if err := rows.Scan(&l.ID, &l.Name, &l.IsDefault, &l.RuleCount, &l.PromptCount); err != nil {
			return nil, err
		}
		loadouts = append(loadouts, l)
	}
	return loadouts, rows.Err()
}

// Delete removes a loadout and its membership rows. The default loadout
// cannot be deleted.
func (s *LoadoutStore) Delete(name string) error {
	loadout, err := s.get(name)
	if err != nil {
		return err
	}
	if loadout == nil {
		return fmt.Errorf("loadout '%s' not found", name)
	}
	if loadout.IsDefault {
		return fmt.Errorf("cannot delete the default loadout")
	}

	_, err = s.db.Exec("DELETE FROM loadouts WHERE id = ?", loadout.ID)
	return err
}

// Save replaces the loadout's membership with a full snapshot of every
// prompt and rule currently in the database.
func (s *LoadoutStore) Save(name string) error {
	loadout, err := s.get(name)
	if err != nil {
		return err
	}
	if loadout == nil {
		return fmt.Errorf("loadout '%s' not found", name)
	}

	if _, err := s.db.Exec("DELETE FROM loadout_rules WHERE loadout_id = ?", loadout.ID); err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM loadout_prompts WHERE loadout_id = ?", loadout.ID); err != nil {
		return err
	}

	if _, err := s.db.Exec(
		"INSERT INTO loadout_rules (loadout_id, rule_id) SELECT ?, id FROM agent_rules",
		loadout.ID,
	); err != nil {
		return err
	}
	_, err = s.db.Exec(
		"INSERT INTO loadout_prompts (loadout_id, prompt_id) SELECT ?, id FROM prompts",
		loadout.ID,
	)
	return err
}

// Load makes the loadout the active set by deleting every rule and prompt
// not referenced by it. Rows outside the set are gone for good unless they
// were saved into another loadout first.
func (s *LoadoutStore) Load(name string) error {
	loadout, err := s.get(name)
	if err != nil {
		return err
	}
	if loadout == nil {
		return fmt.Errorf("loadout '%s' not found", name)
	}

	if _, err := s.db.Exec(`
		DELETE FROM agent_rules
		WHERE id NOT IN (SELECT rule_id FROM loadout_rules WHERE loadout_id = ?)
	`, loadout.ID); err != nil {
		return err
	}
	_, err = s.db.Exec(`
		DELETE FROM prompts
		WHERE id NOT IN (SELECT prompt_id FROM loadout_prompts WHERE loadout_id = ?)
	`, loadout.ID)
	return err
}

// ReloadDefault loads the default loadout.
func (s *LoadoutStore) ReloadDefault() error {
	return s.Load("default")
}

func (s *LoadoutStore) get(name string) (*models.Loadout, error) {
	var l models.Loadout
	err := s.db.QueryRow(
		"SELECT id, name, is_default FROM loadouts WHERE name = ?", name,
	).Scan(&l.ID, &l.Name, &l.IsDefault)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
