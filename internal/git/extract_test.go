package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(fields ...string) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += fieldSep
		}
		out += f
	}
	return out + recordSep
}

func TestParseLog(t *testing.T) {
	output := record(
		"a1b2c3d4e5f60718293a4b5c6d7e8f9012345678",
		"1111111111111111111111111111111111111111",
		"Jamie Rivera",
		"jamie@example.com",
		"1709294400",
		"Add session handling\n\nStores sessions in sqlite.\n",
	) + "\n" + record(
		"1111111111111111111111111111111111111111",
		"",
		"Jamie Rivera",
		"jamie@example.com",
		"1709208000",
		"Initial commit\n",
	)

	commits, err := ParseLog(output)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	first := commits[0]
	assert.Equal(t, "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678", first.Hash)
	assert.Equal(t, "1111111111111111111111111111111111111111", first.FirstParent)
	assert.Equal(t, "Jamie Rivera", first.Author)
	assert.Equal(t, "2024-03-01T12:00:00Z", first.Date)
	assert.Equal(t, "Add session handling\n\nStores sessions in sqlite.", first.Message)

	root := commits[1]
	assert.Empty(t, root.FirstParent, "root commit has no parents")
	assert.Equal(t, "Initial commit", root.Message)
}

func TestParseLogMergeCommitUsesFirstParent(t *testing.T) {
	output := record(
		"cafe0000cafe0000cafe0000cafe0000cafe0000",
		"aaaa000000000000000000000000000000000000 bbbb000000000000000000000000000000000000",
		"Jamie Rivera",
		"jamie@example.com",
		"1709294400",
		"Merge branch 'feature'\n",
	)

	commits, err := ParseLog(output)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "aaaa000000000000000000000000000000000000", commits[0].FirstParent)
}

func TestParseLogAuthorFallbacks(t *testing.T) {
	output := record(
		"a1b2c3d4", "", "", "", "1709294400", "msg\n",
	)

	commits, err := ParseLog(output)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "Unknown", commits[0].Author)
	assert.Equal(t, "unknown@example.com", commits[0].Email)
}

func TestParseLogEmptyOutput(t *testing.T) {
	commits, err := ParseLog("")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestParseLogMalformedTimestamp(t *testing.T) {
	output := record("a1b2c3d4", "", "A", "a@b.c", "not-a-number", "msg")

	_, err := ParseLog(output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp")
}

func TestParseNumstat(t *testing.T) {
	output := "10\t2\tinternal/db/db.go\n" +
		"3\t0\tcmd/contrack/main.go\n" +
		"-\t-\tassets/logo.png\n"

	added, deleted, files := ParseNumstat(output)
	assert.Equal(t, 13, added)
	assert.Equal(t, 2, deleted)
	assert.Equal(t, []string{
		"internal/db/db.go",
		"cmd/contrack/main.go",
		"assets/logo.png",
	}, files)
}

func TestParseNumstatEmpty(t *testing.T) {
	added, deleted, files := ParseNumstat("")
	assert.Zero(t, added)
	assert.Zero(t, deleted)
	assert.Empty(t, files)
}
