package git

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mgiraldo/contrack/internal/models"
)

// Field and record separators for the log format, so multi-line commit
// messages survive parsing.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

const logFormat = "%H" + fieldSep + "%P" + fieldSep + "%an" + fieldSep + "%ae" + fieldSep + "%at" + fieldSep + "%B" + recordSep

// Extract walks every commit reachable from HEAD and returns one Commit per
// hash, with diff stats computed against the first parent. Root commits
// carry no stats and an empty file list. Any git failure aborts the whole
// extraction.
func Extract(path string) ([]models.Commit, error) {
	if !IsRepo(path) {
		return nil, fmt.Errorf("failed to open git repository at %s: not a git repository", path)
	}

	remoteURL := RemoteURL(path)

	logOutput, err := run(path, "log", "HEAD", "--format="+logFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit history at %s: %w", path, err)
	}

	raws, err := ParseLog(logOutput)
	if err != nil {
		return nil, err
	}

	commits := make([]models.Commit, 0, len(raws))
	for _, raw := range raws {
		commit := models.Commit{
			Hash:          raw.Hash,
			RepositoryURL: remoteURL,
			Author:        raw.Author,
			AuthorEmail:   raw.Email,
			Date:          raw.Date,
			Message:       raw.Message,
			FilesChanged:  []string{},
		}

		if raw.FirstParent != "" {
			statOutput, err := run(path, "diff-tree", "-r", "--numstat", raw.FirstParent, raw.Hash)
			if err != nil {
				return nil, fmt.Errorf("failed to diff commit %s: %w", shortHash(raw.Hash), err)
			}
			added, deleted, files := ParseNumstat(statOutput)
			commit.LinesAdded = &added
			commit.LinesDeleted = &deleted
			commit.FilesChanged = files
		}

		commits = append(commits, commit)
	}

	return commits, nil
}

// RawCommit is one parsed record of the log format, before diff stats.
type RawCommit struct {
	Hash        string
	FirstParent string
	Author      string
	Email       string
	Date        string
	Message     string
}

// ParseLog splits git log output produced with logFormat into records.
// Missing author name or email fall back to fixed placeholders.
func ParseLog(output string) ([]RawCommit, error) {
	var commits []RawCommit

	for _, record := range strings.Split(output, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		parts := strings.SplitN(record, fieldSep, 6)
		if len(parts) != 6 {
			return nil, fmt.Errorf("malformed git log record: %q", record)
		}

		hash := parts[0]
		parents := strings.Fields(parts[1])
		author := parts[2]
		email := parts[3]

		if author == "" {
			author = "Unknown"
		}
		if email == "" {
			email = "unknown@example.com"
		}

		epoch, err := strconv.ParseInt(parts[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed commit timestamp %q for %s", parts[4], shortHash(hash))
		}

		raw := RawCommit{
			Hash:    hash,
			Author:  author,
			Email:   email,
			Date:    time.Unix(epoch, 0).UTC().Format(time.RFC3339),
			Message: strings.TrimRight(parts[5], "\n"),
		}
		if len(parents) > 0 {
			raw.FirstParent = parents[0]
		}

		commits = append(commits, raw)
	}

	return commits, nil
}

// ParseNumstat sums the added and deleted line counts of numstat output and
// collects the file paths as printed (new-side paths; binary entries count
// as zero lines).
func ParseNumstat(output string) (added, deleted int, files []string) {
	files = []string{}

	for _, line := range strings.Split(output, "\n") {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}

		if n, err := strconv.Atoi(parts[0]); err == nil {
			added += n
		}
		if n, err := strconv.Atoi(parts[1]); err == nil {
			deleted += n
		}
		files = append(files, parts[2])
	}

	return added, deleted, files
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
