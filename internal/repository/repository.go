package repository

import (
	"database/sql"
	"time"

	"github.com/mgiraldo/contrack/internal/models"
)

type RepositoryStore struct {
	db *sql.DB
}

func NewRepositoryStore(db *sql.DB) *RepositoryStore {
	return &RepositoryStore{db: db}
}

// Upsert inserts or fully replaces the repository keyed by URL. The URL is
// not validated.
func (s *RepositoryStore) Upsert(repo models.Repository) error {
	existing, err := s.Get(repo.URL)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if existing != nil {
		_, err = s.db.Exec(`
			UPDATE repositories SET organization = ?, name = ?, description = ?, updated_at = ?
			WHERE repository_url = ?
		`, repo.Organization, repo.Name, repo.Description, now, repo.URL)
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO repositories (repository_url, organization, name, description, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, repo.URL, repo.Organization, repo.Name, repo.Description, now)
	return err
}

func (s *RepositoryStore) Get(url string) (*models.Repository, error) {
	var repo models.Repository
	var description sql.NullString

	err := s.db.QueryRow(`
		SELECT repository_url, organization, name, description
		FROM repositories WHERE repository_url = ?
	`, url).Scan(&repo.URL, &repo.Organization, &repo.Name, &description)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	repo.Description = description.String
	return &repo, nil
}

func (s *RepositoryStore) List() ([]models.Repository, error) {
	rows, err := s.db.Query(`
		SELECT repository_url, organization, name, description
		FROM repositories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repos []models.Repository
	for rows.Next() {
		var repo models.Repository
		var description sql.NullString

		if err := rows.Scan(&repo.URL, &repo.Organization, &repo.Name, &description); err != nil {
			return nil, err
		}
		repo.Description = description.String
		repos = append(repos, repo)
	}
	return repos, rows.Err()
}
