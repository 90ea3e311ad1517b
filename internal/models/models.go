package models

// Repository is a tracked source-code repository, identified by its URL.
type Repository struct {
	URL          string
	Organization string
	Name         string
	Description  string
}

// Contribution is a documented unit of work tied to one repository.
// ID is zero until the row has been written; a zero ID means insert,
// a non-zero ID means update-in-place.
type Contribution struct {
	ID               int64
	RepositoryURL    string
	Name             string
	Overview         string
	Description      string
	KeyCommits       []string
	RelatedCommits   []string
	TechnicalDetails map[string]any
	ResumeBullets    []string
	Category         string
	Priority         int
}

// Commit is one extracted git commit. ContributionID is nil when no
// contribution's commit lists matched the hash. LinesAdded/LinesDeleted
// are nil for root commits, which have no parent diff.
type Commit struct {
	Hash           string
	RepositoryURL  string
	ContributionID *int64
	Author         string
	AuthorEmail    string
	Date           string // RFC 3339, always UTC
	Message        string
	FilesChanged   []string
	LinesAdded     *int
	LinesDeleted   *int
}

// AgentRule is seeded reference data telling an AI agent how to use the
// database.
type AgentRule struct {
	ID          int64
	Name        string
	Instruction string
	Priority    int
	Category    string
}

// Prompt is a seeded reusable prompt template.
type Prompt struct {
	ID          int64
	Name        string
	PromptText  string
	Description string
	Category    string
	Variables   string
}

// Loadout is a named set of active rules and prompts. Loading one deletes
// every rule and prompt outside the set.
type Loadout struct {
	ID          int64
	Name        string
	IsDefault   bool
	RuleCount   int
	PromptCount int
}
