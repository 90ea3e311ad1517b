package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/mgiraldo/contrack/internal/models"
)

type CommitStore struct {
	db *sql.DB
}

func NewCommitStore(db *sql.DB) *CommitStore {
	return &CommitStore{db: db}
}

// Upsert inserts or fully replaces the commit keyed by hash. The replace
// path writes contribution_id from the supplied value, including nil: a
// re-run of reconciliation that no longer matches a stored commit clears
// its assignment. The contribution lists are the source of truth.
func (s *CommitStore) Upsert(c models.Commit) error {
	filesJSON, err := json.Marshal(emptyIfNil(c.FilesChanged))
	if err != nil {
		return err
	}

	var exists bool
	err = s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM commits WHERE commit_hash = ?)", c.Hash,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = s.db.Exec(`
			UPDATE commits
			SET repository_url = ?, contribution_id = ?, author = ?, author_email = ?,
			    date = ?, message = ?, files_changed = ?, lines_added = ?, lines_deleted = ?
			WHERE commit_hash = ?
		`, c.RepositoryURL, c.ContributionID, c.Author, c.AuthorEmail,
			c.Date, c.Message, string(filesJSON), c.LinesAdded, c.LinesDeleted, c.Hash)
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO commits
		(commit_hash, repository_url, contribution_id, author, author_email, date,
		 message, files_changed, lines_added, lines_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Hash, c.RepositoryURL, c.ContributionID, c.Author, c.AuthorEmail,
		c.Date, c.Message, string(filesJSON), c.LinesAdded, c.LinesDeleted)
	return err
}

func (s *CommitStore) Get(hash string) (*models.Commit, error) {
	row := s.db.QueryRow(commitSelect+" WHERE cm.commit_hash = ?", hash)

	c, err := scanCommit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListForContribution returns the commits assigned to the named
// contribution, newest first. Dates are RFC 3339 in UTC, so the
// lexicographic sort is chronological.
func (s *CommitStore) ListForContribution(repoURL, name string) ([]models.Commit, error) {
	rows, err := s.db.Query(commitSelect+`
		JOIN contributions c ON cm.contribution_id = c.id
		WHERE c.repository_url = ? AND c.name = ?
		ORDER BY cm.date DESC
	`, repoURL, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commits []models.Commit
	for rows.Next() {
		c, err := scanCommit(rows)
		if err != nil {
			return nil, err
		}
		commits = append(commits, *c)
	}
	return commits, rows.Err()
}

const commitSelect = `
	SELECT cm.commit_hash, cm.repository_url, cm.contribution_id, cm.author,
	       cm.author_email, cm.date, cm.message, cm.files_changed,
	       cm.lines_added, cm.lines_deleted
	FROM commits cm`

func scanCommit(row rowScanner) (*models.Commit, error) {
	var c models.Commit
	var contributionID sql.NullInt64
	var authorEmail, message, filesJSON sql.NullString
	var linesAdded, linesDeleted sql.NullInt64

	err := row.Scan(
		&c.Hash, &c.RepositoryURL, &contributionID, &c.Author,
		&authorEmail, &c.Date, &message, &filesJSON,
		&linesAdded, &linesDeleted,
	)
	if err != nil {
		return nil, err
	}

	if contributionID.Valid {
		c.ContributionID = &contributionID.Int64
	}
	c.AuthorEmail = authorEmail.String
	c.Message = message.String
	if linesAdded.Valid {
		added := int(linesAdded.Int64)
		c.LinesAdded = &added
	}
	if linesDeleted.Valid {
		deleted := int(linesDeleted.Int64)
		c.LinesDeleted = &deleted
	}

	if err := json.Unmarshal([]byte(orEmptyJSON(filesJSON, "[]")), &c.FilesChanged); err != nil {
		return nil, err
	}

	return &c, nil
}
