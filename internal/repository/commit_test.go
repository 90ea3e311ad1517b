package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgiraldo/contrack/internal/models"
	"github.com/mgiraldo/contrack/internal/repository"
)

func intPtr(n int) *int { return &n }

func testCommit(hash, date string, contributionID *int64) models.Commit {
	return models.Commit{
		Hash:           hash,
		RepositoryURL:  repoURL,
		ContributionID: contributionID,
		Author:         "Jamie Rivera",
		AuthorEmail:    "jamie@example.com",
		Date:           date,
		Message:        "commit " + hash[:6],
		FilesChanged:   []string{"main.go"},
		LinesAdded:     intPtr(10),
		LinesDeleted:   intPtr(2),
	}
}

func TestCommitUpsertAndGet(t *testing.T) {
	database := openTestDB(t)
	commits := repository.NewCommitStore(database)

	c := testCommit("abc123def4567890", "2024-03-01T12:00:00Z", nil)
	require.NoError(t, commits.Upsert(c))

	got, err := commits.Get(c.Hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jamie Rivera", got.Author)
	assert.Equal(t, []string{"main.go"}, got.FilesChanged)
	require.NotNil(t, got.LinesAdded)
	assert.Equal(t, 10, *got.LinesAdded)
	assert.Nil(t, got.ContributionID)
}

func TestCommitRefreshClearsAssignment(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, repository.NewRepositoryStore(database).Upsert(testRepository(repoURL)))
	contribs := repository.NewContributionStore(database)
	commits := repository.NewCommitStore(database)

	id, err := contribs.Upsert(testContribution(repoURL, "Auth System", 8))
	require.NoError(t, err)

	c := testCommit("abc123def4567890", "2024-03-01T12:00:00Z", &id)
	require.NoError(t, commits.Upsert(c))

	got, err := commits.Get(c.Hash)
	require.NoError(t, err)
	require.NotNil(t, got.ContributionID)
	assert.Equal(t, id, *got.ContributionID)

	// A re-run whose reconciliation found no match writes a nil assignment,
	// which must overwrite the earlier one.
	c.ContributionID = nil
	require.NoError(t, commits.Upsert(c))

	got, err = commits.Get(c.Hash)
	require.NoError(t, err)
	assert.Nil(t, got.ContributionID)
}

func TestCommitRootCommitHasNoStats(t *testing.T) {
	database := openTestDB(t)
	commits := repository.NewCommitStore(database)

	root := models.Commit{
		Hash:          "000111222333",
		RepositoryURL: repoURL,
		Author:        "Unknown",
		AuthorEmail:   "unknown@example.com",
		Date:          "2024-01-01T00:00:00Z",
		Message:       "initial",
		FilesChanged:  []string{},
	}
	require.NoError(t, commits.Upsert(root))

	got, err := commits.Get(root.Hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.LinesAdded)
	assert.Nil(t, got.LinesDeleted)
	assert.Empty(t, got.FilesChanged)
}

func TestCommitListForContributionNewestFirst(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, repository.NewRepositoryStore(database).Upsert(testRepository(repoURL)))
	contribs := repository.NewContributionStore(database)
	commits := repository.NewCommitStore(database)

	id, err := contribs.Upsert(testContribution(repoURL, "Auth System", 8))
	require.NoError(t, err)

	require.NoError(t, commits.Upsert(testCommit("aaa111aaa111aaa1", "2024-01-15T08:00:00Z", &id)))
	require.NoError(t, commits.Upsert(testCommit("bbb222bbb222bbb2", "2024-04-20T08:00:00Z", &id)))
	require.NoError(t, commits.Upsert(testCommit("ccc333ccc333ccc3", "2024-02-10T08:00:00Z", nil)))

	list, err := commits.ListForContribution(repoURL, "Auth System")
	require.NoError(t, err)
	require.Len(t, list, 2, "unassigned commits must not appear")
	assert.Equal(t, "bbb222bbb222bbb2", list[0].Hash)
	assert.Equal(t, "aaa111aaa111aaa1", list[1].Hash)
}
