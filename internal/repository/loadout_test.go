package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgiraldo/contrack/internal/repository"
)

func TestLoadoutSeededDefault(t *testing.T) {
	database := openTestDB(t)
	store := repository.NewLoadoutStore(database)

	loadouts, err := store.List()
	require.NoError(t, err)
	require.Len(t, loadouts, 1)
	assert.Equal(t, "default", loadouts[0].Name)
	assert.True(t, loadouts[0].IsDefault)
	assert.Equal(t, 3, loadouts[0].RuleCount, "default loadout should reference every seeded rule")
	assert.Equal(t, 2, loadouts[0].PromptCount, "default loadout should reference every seeded prompt")
}

func TestLoadoutCreateDuplicateFails(t *testing.T) {
	database := openTestDB(t)
	store := repository.NewLoadoutStore(database)

	require.NoError(t, store.Create("work"))
	err := store.Create("work")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoadoutDeleteDefaultFails(t *testing.T) {
	database := openTestDB(t)
	store := repository.NewLoadoutStore(database)

	err := store.Delete("default")
	require.Error(t, err)

	loadouts, err := store.List()
	require.NoError(t, err)
	assert.Len(t, loadouts, 1, "failed delete must leave storage unchanged")
}

func TestLoadoutDeleteMissingFails(t *testing.T) {
	database := openTestDB(t)
	store := repository.NewLoadoutStore(database)

	err := store.Delete("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadoutDelete(t *testing.T) {
	database := openTestDB(t)
	store := repository.NewLoadoutStore(database)

	require.NoError(t, store.Create("scratch"))
	require.NoError(t, store.Save("scratch"))
	require.NoError(t, store.Delete("scratch"))

	loadouts, err := store.List()
	require.NoError(t, err)
	assert.Len(t, loadouts, 1)

	// Deleting a loadout never deletes rules or prompts themselves.
	rules, err := repository.NewRuleStore(database).List()
	require.NoError(t, err)
	assert.Len(t, rules, 3)
}

func TestLoadoutLoadFiltersMembership(t *testing.T) {
	database := openTestDB(t)
	store := repository.NewLoadoutStore(database)
	prompts := repository.NewPromptStore(database)

	// Snapshot the current set (the seeded rules and prompts) into "A".
	require.NoError(t, store.Create("A"))
	require.NoError(t, store.Save("A"))

	// Add a prompt after the snapshot.
	_, err := database.Exec(
		"INSERT INTO prompts (name, prompt_text, description, category) VALUES (?, ?, ?, ?)",
		"extra_prompt", "Do the extra thing.", "Added after save", "Analysis",
	)
	require.NoError(t, err)

	before, err := prompts.List()
	require.NoError(t, err)
	require.Len(t, before, 3)

	// Loading "A" deletes everything outside the snapshot.
	require.NoError(t, store.Load("A"))

	after, err := prompts.List()
	require.NoError(t, err)
	require.Len(t, after, 2)
	for _, p := range after {
		assert.NotEqual(t, "extra_prompt", p.Name)
	}

	rules, err := repository.NewRuleStore(database).List()
	require.NoError(t, err)
	assert.Len(t, rules, 3, "rules inside the loadout must survive")
}

func TestLoadoutLoadMissingFails(t *testing.T) {
	database := openTestDB(t)
	store := repository.NewLoadoutStore(database)

	err := store.Load("nope")
	require.Error(t, err)

	prompts, perr := repository.NewPromptStore(database).List()
	require.NoError(t, perr)
	assert.Len(t, prompts, 2, "failed load must not delete anything")
}

func TestLoadoutReloadDefault(t *testing.T) {
	database := openTestDB(t)
	store := repository.NewLoadoutStore(database)

	_, err := database.Exec(
		"INSERT INTO prompts (name, prompt_text) VALUES (?, ?)", "stray", "text",
	)
	require.NoError(t, err)

	require.NoError(t, store.ReloadDefault())

	prompts, err := repository.NewPromptStore(database).List()
	require.NoError(t, err)
	assert.Len(t, prompts, 2)
}

func TestStatistics(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, repository.NewRepositoryStore(database).Upsert(testRepository(repoURL)))
	_, err := repository.NewContributionStore(database).Upsert(testContribution(repoURL, "X", 5))
	require.NoError(t, err)

	stats, err := repository.Statistics(database)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["repositories"])
	assert.Equal(t, int64(1), stats["contributions"])
	assert.Equal(t, int64(0), stats["commits"])
	assert.Equal(t, int64(3), stats["agent_rules"])
	assert.Equal(t, int64(2), stats["prompts"])
	assert.Equal(t, int64(1), stats["loadouts"])
}
