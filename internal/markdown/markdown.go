// Package markdown renders a repository's contribution record as a single
// markdown document.
package markdown

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mgiraldo/contrack/internal/models"
)

// Entry pairs a contribution with its assigned commits, newest first.
type Entry struct {
	Contribution models.Contribution
	Commits      []models.Commit
}

// Generate renders the document. Entries must arrive in storage order
// (priority descending, then name); contributions are grouped under their
// category in first-appearance order, so higher-priority categories lead.
// When author is non-empty, only commits by that author are listed, but a
// contribution with no matching commits is still rendered.
func Generate(repoURL string, entries []Entry, author string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Contributions — %s\n\n", repoURL)
	fmt.Fprintf(&b, "Generated on %s.\n", time.Now().UTC().Format("2006-01-02"))
	if author != "" {
		fmt.Fprintf(&b, "Commit listings filtered to author: %s.\n", author)
	}

	var categories []string
	grouped := make(map[string][]Entry)
	for _, entry := range entries {
		category := entry.Contribution.Category
		if category == "" {
			category = "Uncategorized"
		}
		if _, seen := grouped[category]; !seen {
			categories = append(categories, category)
		}
		grouped[category] = append(grouped[category], entry)
	}

	for _, category := range categories {
		fmt.Fprintf(&b, "\n## %s\n", category)
		for _, entry := range grouped[category] {
			writeContribution(&b, entry, author)
		}
	}

	return b.String()
}

func writeContribution(b *strings.Builder, entry Entry, author string) {
	contrib := entry.Contribution

	fmt.Fprintf(b, "\n### %s\n\n", contrib.Name)
	fmt.Fprintf(b, "Priority: %d\n", contrib.Priority)

	if contrib.Overview != "" {
		fmt.Fprintf(b, "\n%s\n", contrib.Overview)
	}
	if contrib.Description != "" {
		fmt.Fprintf(b, "\n**Description**\n\n%s\n", contrib.Description)
	}

	commits := entry.Commits
	if author != "" {
		filtered := make([]models.Commit, 0, len(commits))
		for _, c := range commits {
			if c.Author == author {
				filtered = append(filtered, c)
			}
		}
		commits = filtered
	}

	byHash := make(map[string]models.Commit, len(commits))
	for _, c := range commits {
		byHash[c.Hash] = c
	}

	writeCommitList(b, "Key Commits", contrib.KeyCommits, byHash)
	writeCommitList(b, "Related Commits", contrib.RelatedCommits, byHash)

	if len(contrib.TechnicalDetails) > 0 {
		b.WriteString("\n**Technical Details**\n\n")
		keys := make([]string, 0, len(contrib.TechnicalDetails))
		for k := range contrib.TechnicalDetails {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, "- %s: %s\n", k, renderValue(contrib.TechnicalDetails[k]))
		}
	}

	if len(contrib.ResumeBullets) > 0 {
		b.WriteString("\n**Resume Bullets**\n\n")
		for i, bullet := range contrib.ResumeBullets {
			fmt.Fprintf(b, "%d. %s\n", i+1, bullet)
		}
	}
}

// writeCommitList renders one commit-id list, resolving ids that prefix a
// fetched commit's hash to full detail and printing the rest bare.
func writeCommitList(b *strings.Builder, title string, ids []string, byHash map[string]models.Commit) {
	if len(ids) == 0 {
		return
	}

	fmt.Fprintf(b, "\n**%s**\n\n", title)
	for _, id := range ids {
		if commit, ok := resolve(id, byHash); ok {
			line := fmt.Sprintf("- `%s` %s (%s, %s)",
				shortHash(commit.Hash), firstLine(commit.Message), commit.Author, commit.Date)
			if commit.LinesAdded != nil && commit.LinesDeleted != nil {
				line += fmt.Sprintf(" [+%d/-%d]", *commit.LinesAdded, *commit.LinesDeleted)
			}
			b.WriteString(line + "\n")
		} else {
			fmt.Fprintf(b, "- `%s`\n", id)
		}
	}
}

func resolve(id string, byHash map[string]models.Commit) (models.Commit, bool) {
	if c, ok := byHash[id]; ok {
		return c, true
	}
	for hash, c := range byHash {
		if strings.HasPrefix(hash, id) {
			return c, true
		}
	}
	return models.Commit{}, false
}

func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}

func firstLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
