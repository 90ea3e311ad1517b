package repository

import (
	"database/sql"

	"github.com/mgiraldo/contrack/internal/models"
)

// RuleStore and PromptStore read the seeded reference data. Normal
// operation never mutates these tables; only loadout loading does.

type RuleStore struct {
	db *sql.DB
}

func NewRuleStore(db *sql.DB) *RuleStore {
	return &RuleStore{db: db}
}

func (s *RuleStore) List() ([]models.AgentRule, error) {
	rows, err := s.db.Query(`
		SELECT id, name, instruction, priority, category
		FROM agent_rules ORDER BY priority DESC, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.AgentRule
	for rows.Next() {
		var r models.AgentRule
		var category sql.NullString
		if err := rows.Scan(&r.ID, &r.Name, &r.Instruction, &r.Priority, &category); err != nil {
			return nil, err
		}
		r.Category = category.String
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

type PromptStore struct {
	db *sql.DB
}

func NewPromptStore(db *sql.DB) *PromptStore {
	return &PromptStore{db: db}
}

func (s *PromptStore) List() ([]models.Prompt, error) {
	rows, err := s.db.Query(`
		SELECT id, name, prompt_text, description, category, variables
		FROM prompts ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []models.Prompt
	for rows.Next() {
		var p models.Prompt
		var description, category, variables sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.PromptText, &description, &category, &variables); err != nil {
			return nil, err
		}
		p.Description = description.String
		p.Category = category.String
		p.Variables = variables.String
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}
