// Package classify decides whether a mainstream-dataset vehicle is a
// sports/performance variant. The decision is a pure function of
// (make, model) against an injectable configuration: an allowlist of
// sports-only brands and a list of performance model keywords.
package classify

import (
	"strings"

	"autotrends/pkg/contracts/domain"
)

// Config holds the classification lists. Both lists are data, not
// behavior: callers (and the config file) may override them, and tests
// inject reduced lists.
type Config struct {
	// Brands are matched against the make with a case-sensitive exact
	// comparison. A match classifies every model of the brand.
	Brands []string `yaml:"brands"`
	// ModelKeywords are matched against the model with a case-insensitive
	// substring comparison. Short tokens ("86", "S4") can match unrelated
	// model names that contain them; this mirrors the reference behavior
	// and is deliberately not hardened.
	ModelKeywords []string `yaml:"model_keywords"`
}

// Classifier answers the performance-variant question for mainstream
// records. It is stateless after construction and safe for concurrent use.
type Classifier struct {
	brands   map[string]struct{}
	keywords []string
}

// New builds a Classifier from the given config. Keyword matching is
// case-insensitive, so keywords are lowered once here.
func New(cfg Config) *Classifier {
	c := &Classifier{
		brands:   make(map[string]struct{}, len(cfg.Brands)),
		keywords: make([]string, 0, len(cfg.ModelKeywords)),
	}
	for _, b := range cfg.Brands {
		c.brands[b] = struct{}{}
	}
	for _, k := range cfg.ModelKeywords {
		if k = strings.TrimSpace(k); k != "" {
			c.keywords = append(c.keywords, strings.ToLower(k))
		}
	}
	return c
}

// IsPerformance reports whether (make, model) is a sports/performance
// variant. Brand allowlist is checked first, then model keywords.
func (c *Classifier) IsPerformance(make, model string) bool {
	if _, ok := c.brands[make]; ok {
		return true
	}
	lower := strings.ToLower(model)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Partition splits a mainstream collection into its mainstream and
// performance subsets, preserving input order within each subset.
func (c *Classifier) Partition(records []domain.VehicleRecord) (mainstream, performance []domain.VehicleRecord) {
	for _, r := range records {
		if c.IsPerformance(r.Make, r.Model) {
			performance = append(performance, r)
		} else {
			mainstream = append(mainstream, r)
		}
	}
	return mainstream, performance
}
