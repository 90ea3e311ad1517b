package db

import "database/sql"

// Seed data shipped with every fresh database. Rules tell an AI agent how to
// work with the database; prompts are reusable task templates. Each set is
// inserted only when its table is empty, so user edits survive reopening.

type seedRule struct {
	name        string
	instruction string
	priority    int
	category    string
}

type seedPrompt struct {
	name        string
	promptText  string
	description string
	category    string
	variables   string
}

var seedRules = []seedRule{
	{
		name: "read_contributions_database",
		instruction: "When a user provides a SQLite contributions database file, you should:\n" +
			"1. First, read the agent_rules table to understand how to use this database\n" +
			"2. Read the repositories table to understand what repositories are tracked\n" +
			"3. Read the contributions table to see what features/contributions have been documented\n" +
			"4. Read the commits table for detailed commit information when needed\n" +
			"5. Use the prompts table to find reusable prompts for common tasks\n" +
			"6. Always check the updated_at timestamps to understand data freshness",
		priority: 10,
		category: "Database Usage",
	},
	{
		name: "generate_contributions_markdown",
		instruction: "To generate or update a contributions markdown file:\n" +
			"1. Query contributions table for the repository, ordered by priority DESC, then by name\n" +
			"2. For each contribution, include: Name and overview, Key commits (look up details in commits table), Related commits, Technical details (from JSON field), Resume bullet points (from JSON array)\n" +
			"3. Group related contributions by category\n" +
			"4. Include timestamps from commits table for human-readable dates\n" +
			"5. Always include author information from commits\n" +
			"6. Maintain consistent formatting across all contribution files\n" +
			"7. Update the markdown file, preserving existing structure where possible",
		priority: 9,
		category: "Documentation",
	},
	{
		name: "maintain_consistency",
		instruction: "When working with contributions data:\n" +
			"1. Always use the same structure and format for similar contributions\n" +
			"2. Keep resume bullet points concise and action-oriented\n" +
			"3. Technical details should include: technology_stack, patterns, integrations, storage, security\n" +
			"4. Categories should be consistent: Core Feature, Integration, Infrastructure, Feature Enhancement, Feature, Configuration, Performance, Bug Fix\n" +
			"5. Priority should reflect importance: 10 = critical/core, 9-8 = major features, 7-5 = important features, 4-1 = minor features/fixes\n" +
			"6. When adding new contributions, follow existing patterns in the database",
		priority: 8,
		category: "Data Quality",
	},
}

var seedPrompts = []seedPrompt{
	{
		name: "analyze_contributions",
		promptText: "Analyze the contributions database for repository {repository_url}.\n\n" +
			"1. Read all agent rules from the agent_rules table\n" +
			"2. Query all contributions for this repository\n" +
			"3. For each contribution, provide:\n" +
			"   - Summary of what was built\n" +
			"   - Key technical details\n" +
			"   - Resume bullet points\n" +
			"   - Associated commits with dates\n\n" +
			"Generate a comprehensive analysis following the patterns established in the database.",
		description: "Prompt for analyzing all contributions in a repository",
		category:    "Analysis",
		variables:   `["repository_url"]`,
	},
	{
		name: "generate_contributions_markdown",
		promptText: "Update the contributions markdown file for repository {repository_url} based on the contributions database.\n\n" +
			"1. Read the current markdown file if it exists\n" +
			"2. Query contributions from database ordered by priority and category\n" +
			"3. Generate/update markdown following the established format\n" +
			"4. Include all contributions with their details\n" +
			"5. Maintain consistency with existing documentation style\n" +
			"6. Update timestamps and author information from commits table",
		description: "Prompt for updating contributions markdown file",
		category:    "Documentation",
		variables:   `["repository_url"]`,
	},
}

// DefaultLoadout is created at first seed and cannot be deleted.
const DefaultLoadout = "default"

// EnsureSeed inserts the built-in rules and prompts when their tables are
// empty, and creates the default loadout referencing everything present.
func EnsureSeed(database *sql.DB) error {
	if err := seedAgentRules(database); err != nil {
		return err
	}
	if err := seedPromptRows(database); err != nil {
		return err
	}
	return seedDefaultLoadout(database)
}

func seedAgentRules(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM agent_rules").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, rule := range seedRules {
		_, err := database.Exec(
			"INSERT INTO agent_rules (name, instruction, priority, category) VALUES (?, ?, ?, ?)",
			rule.name, rule.instruction, rule.priority, rule.category,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedPromptRows(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM prompts").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range seedPrompts {
		_, err := database.Exec(
			"INSERT INTO prompts (name, prompt_text, description, category, variables) VALUES (?, ?, ?, ?, ?)",
			p.name, p.promptText, p.description, p.category, p.variables,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDefaultLoadout(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM loadouts").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	result, err := database.Exec(
		"INSERT INTO loadouts (name, is_default) VALUES (?, 1)", DefaultLoadout,
	)
	if err != nil {
		return err
	}

	loadoutID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	if _, err := database.Exec(
		"INSERT INTO loadout_rules (loadout_id, rule_id) SELECT ?, id FROM agent_rules",
		loadoutID,
	); err != nil {
		return err
	}
	_, err = database.Exec(
		"INSERT INTO loadout_prompts (loadout_id, prompt_id) SELECT ?, id FROM prompts",
		loadoutID,
	)
	return err
}
