package repository_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgiraldo/contrack/internal/git"
	"github.com/mgiraldo/contrack/internal/models"
	"github.com/mgiraldo/contrack/internal/reconcile"
	"github.com/mgiraldo/contrack/internal/repository"
)

// TestUpdateFlow drives the whole update pass against a real git repository:
// register a repository, record a contribution keyed by a short hash prefix,
// extract and reconcile the commits, then read them back by contribution.
func TestUpdateFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	workdir := t.TempDir()
	gitIn := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", workdir}, args...)...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	const remoteURL = "https://github.com/acme/widget"
	gitIn("init")
	gitIn("config", "user.name", "Jamie Rivera")
	gitIn("config", "user.email", "jamie@example.com")
	gitIn("remote", "add", "origin", remoteURL)
	require.NoError(t, os.WriteFile(filepath.Join(workdir, "auth.go"), []byte("package auth\n"), 0644))
	gitIn("add", ".")
	gitIn("commit", "-m", "Add auth package")

	database := openTestDB(t)
	repoStore := repository.NewRepositoryStore(database)
	contribStore := repository.NewContributionStore(database)
	commitStore := repository.NewCommitStore(database)

	require.NoError(t, repoStore.Upsert(models.Repository{
		URL: remoteURL, Organization: "Acme", Name: "widget",
	}))

	commits, err := git.Extract(workdir)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	hash := commits[0].Hash

	contrib := testContribution(remoteURL, "Auth System", 8)
	contrib.KeyCommits = []string{hash[:6]}
	contrib.RelatedCommits = nil
	_, err = contribStore.Upsert(contrib)
	require.NoError(t, err)

	repos, err := repoStore.List()
	require.NoError(t, err)

	for _, commit := range commits {
		id, err := reconcile.Assign(commit, repos, contribStore.List)
		require.NoError(t, err)
		commit.ContributionID = id
		require.NoError(t, commitStore.Upsert(commit))
	}

	stored, err := commitStore.ListForContribution(remoteURL, "Auth System")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, hash, stored[0].Hash)
	assert.Equal(t, "Jamie Rivera", stored[0].Author)
	assert.Equal(t, "jamie@example.com", stored[0].AuthorEmail)
	assert.True(t, strings.HasSuffix(stored[0].Date, "Z"))
	assert.Equal(t, "Add auth package", stored[0].Message)

	// Editing the contribution so nothing matches, then re-running the
	// pass, clears the assignment.
	contrib.KeyCommits = []string{"ffffff"}
	_, err = contribStore.Upsert(contrib)
	require.NoError(t, err)

	for _, commit := range commits {
		id, err := reconcile.Assign(commit, repos, contribStore.List)
		require.NoError(t, err)
		commit.ContributionID = id
		require.NoError(t, commitStore.Upsert(commit))
	}

	stored, err = commitStore.ListForContribution(remoteURL, "Auth System")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
