package config

import (
	"strings"

	"github.com/mgiraldo/contrack/internal/models"
)

// FromRepositories builds a config mirroring the given repository rows.
// Organizations are keyed by a slug of their name.
func FromRepositories(repos []models.Repository) *Config {
	cfg := New()
	for _, repo := range repos {
		orgID := Slug(repo.Organization)
		if _, ok := cfg.Organizations[orgID]; !ok {
			cfg.Organizations[orgID] = Organization{Name: repo.Organization}
		}
		cfg.Repositories[repo.URL] = RepositoryConfig{
			Organization: orgID,
			Name:         repo.Name,
			Description:  repo.Description,
		}
	}
	return cfg
}

// ToRepositories flattens the config's repository entries into rows,
// resolving organization ids back to display names where known.
func (c *Config) ToRepositories() []models.Repository {
	repos := make([]models.Repository, 0, len(c.Repositories))
	for url, rc := range c.Repositories {
		org := rc.Organization
		if o, ok := c.Organizations[rc.Organization]; ok {
			org = o.Name
		}
		repos = append(repos, models.Repository{
			URL:          url,
			Organization: org,
			Name:         rc.Name,
			Description:  rc.Description,
		})
	}
	return repos
}

// Slug lowercases a name and replaces runs of non-alphanumerics with
// a single dash, for use as a TOML table key.
func Slug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
