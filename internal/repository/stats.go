package repository

import "database/sql"

// Statistics returns row counts per entity table.
func Statistics(db *sql.DB) (map[string]int64, error) {
	stats := make(map[string]int64)

	for _, table := range []string{
		"repositories", "contributions", "commits", "agent_rules", "prompts", "loadouts",
	} {
		var count int64
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			return nil, err
		}
		stats[table] = count
	}
	return stats, nil
}
