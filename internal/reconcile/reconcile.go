// Package reconcile assigns extracted commits to contributions by
// hash-prefix matching against each contribution's recorded commit lists.
package reconcile

import (
	"strings"

	"github.com/mgiraldo/contrack/internal/models"
)

// Assign returns the id of the first contribution whose key or related
// commit lists contain a prefix of the commit's hash, or nil when none
// match. Repositories whose URL differs from the commit's are skipped.
// Contributions must be supplied in storage order (priority descending,
// then name), which decides ties. Scanning stops at the first match.
func Assign(
	commit models.Commit,
	repos []models.Repository,
	contributionsOf func(repoURL string) ([]models.Contribution, error),
) (*int64, error) {
	for _, repo := range repos {
		if repo.URL != commit.RepositoryURL {
			continue
		}

		contributions, err := contributionsOf(repo.URL)
		if err != nil {
			return nil, err
		}

		for _, contrib := range contributions {
			if matches(contrib, commit.Hash) {
				id := contrib.ID
				return &id, nil
			}
		}
	}
	return nil, nil
}

func matches(c models.Contribution, hash string) bool {
	for _, prefix := range c.KeyCommits {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	for _, prefix := range c.RelatedCommits {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
