package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mgiraldo/contrack/internal/models"
)

type ContributionStore struct {
	db *sql.DB
}

func NewContributionStore(db *sql.DB) *ContributionStore {
	return &ContributionStore{db: db}
}

// Upsert inserts or fully replaces the contribution keyed by
// (repository URL, name). The four collection fields are stored as JSON
// text columns. Returns the row id looked up after the write, so the id is
// correct on both the insert and the replace path.
func (s *ContributionStore) Upsert(c models.Contribution) (int64, error) {
	keyCommits, err := json.Marshal(emptyIfNil(c.KeyCommits))
	if err != nil {
		return 0, err
	}
	relatedCommits, err := json.Marshal(emptyIfNil(c.RelatedCommits))
	if err != nil {
		return 0, err
	}
	details := c.TechnicalDetails
	if details == nil {
		details = map[string]any{}
	}
	technicalDetails, err := json.Marshal(details)
	if err != nil {
		return 0, err
	}
	resumeBullets, err := json.Marshal(emptyIfNil(c.ResumeBullets))
	if err != nil {
		return 0, err
	}

	existing, err := s.Get(c.RepositoryURL, c.Name)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if existing != nil {
		_, err = s.db.Exec(`
			UPDATE contributions
			SET overview = ?, description = ?, key_commits = ?, related_commits = ?,
			    technical_details = ?, resume_bullets = ?, category = ?, priority = ?, updated_at = ?
			WHERE repository_url = ? AND name = ?
		`, c.Overview, c.Description, string(keyCommits), string(relatedCommits),
			string(technicalDetails), string(resumeBullets), c.Category, c.Priority, now,
			c.RepositoryURL, c.Name)
		if err != nil {
			return 0, err
		}
		return existing.ID, nil
	}

	result, err := s.db.Exec(`
		INSERT INTO contributions
		(repository_url, name, overview, description, key_commits, related_commits,
		 technical_details, resume_bullets, category, priority, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.RepositoryURL, c.Name, c.Overview, c.Description, string(keyCommits),
		string(relatedCommits), string(technicalDetails), string(resumeBullets),
		c.Category, c.Priority, now)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *ContributionStore) Get(repoURL, name string) (*models.Contribution, error) {
	row := s.db.QueryRow(contributionSelect+" WHERE repository_url = ? AND name = ?", repoURL, name)

	c, err := scanContribution(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the repository's contributions ordered by priority
// descending, then name. Reconciliation and rendering both depend on this
// order.
func (s *ContributionStore) List(repoURL string) ([]models.Contribution, error) {
	rows, err := s.db.Query(
		contributionSelect+" WHERE repository_url = ? ORDER BY priority DESC, name", repoURL,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, *c)
	}
	return contributions, rows.Err()
}

const contributionSelect = `
	SELECT id, repository_url, name, overview, description, key_commits,
	       related_commits, technical_details, resume_bullets, category, priority
	FROM contributions`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContribution(row rowScanner) (*models.Contribution, error) {
	var c models.Contribution
	var overview, description, category sql.NullString
	var keyCommits, relatedCommits, technicalDetails, resumeBullets sql.NullString

	err := row.Scan(
		&c.ID, &c.RepositoryURL, &c.Name, &overview, &description, &keyCommits,
		&relatedCommits, &technicalDetails, &resumeBullets, &category, &c.Priority,
	)
	if err != nil {
		return nil, err
	}

	c.Overview = overview.String
	c.Description = description.String
	c.Category = category.String

	if err := json.Unmarshal([]byte(orEmptyJSON(keyCommits, "[]")), &c.KeyCommits); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(orEmptyJSON(relatedCommits, "[]")), &c.RelatedCommits); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(orEmptyJSON(technicalDetails, "{}")), &c.TechnicalDetails); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(orEmptyJSON(resumeBullets, "[]")), &c.ResumeBullets); err != nil {
		return nil, err
	}

	return &c, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyJSON(s sql.NullString, empty string) string {
	if !s.Valid || s.String == "" {
		return empty
	}
	return s.String
}
