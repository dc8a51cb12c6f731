// Package classifier assigns survey questions to semantic categories by
// keyword matching over the question label.
package classifier

import "strings"

// DefaultCategoryID is returned when no keyword list matches
const DefaultCategoryID = "other"

// Category is one entry in the keyword table. Categories are checked in
// slice order and the first keyword hit wins, so more specific categories
// belong earlier in the table.
type Category struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Classifier tests labels against an ordered category table. The table is an
// explicit configuration value rather than package state so deployments can
// swap it and tests can pin it.
type Classifier struct {
	categories []Category
}

// New creates a Classifier over the given table. A nil or empty table falls
// back to the built-in default categories.
func New(categories []Category) *Classifier {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}
	return &Classifier{categories: categories}
}

// Classify lowercases the label and returns the id of the first category
// containing a matching keyword substring, or DefaultCategoryID.
// Deterministic and order-dependent.
func (c *Classifier) Classify(label string) string {
	lower := strings.ToLower(label)
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return cat.ID
			}
		}
	}
	return DefaultCategoryID
}

// Categories returns the table in evaluation order
func (c *Classifier) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// DefaultCategories returns the built-in table for employee-satisfaction
// surveys. Order matters: relationship wording often co-occurs with
// evaluation or workload terms, so human relations is checked first.
func DefaultCategories() []Category {
	return []Category{
		{
			ID:       "human_relations",
			Name:     "人間関係",
			Keywords: []string{"上司", "同僚", "部下", "人間関係", "関係", "コミュニケーション", "relationship", "supervisor", "boss", "colleague", "communication"},
		},
		{
			ID:       "workload",
			Name:     "業務負荷",
			Keywords: []string{"残業", "業務量", "負荷", "労働時間", "休暇", "workload", "overtime", "working hours", "vacation"},
		},
		{
			ID:       "compensation",
			Name:     "評価・処遇",
			Keywords: []string{"給与", "報酬", "賞与", "評価", "昇進", "昇給", "処遇", "salary", "pay", "compensation", "evaluation", "promotion"},
		},
		{
			ID:       "growth",
			Name:     "成長・キャリア",
			Keywords: []string{"成長", "研修", "スキル", "キャリア", "教育", "学び", "growth", "training", "skill", "career"},
		},
		{
			ID:       "environment",
			Name:     "職場環境",
			Keywords: []string{"環境", "設備", "オフィス", "安全", "衛生", "テレワーク", "environment", "facility", "office", "safety"},
		},
		{
			ID:       "management",
			Name:     "経営・組織",
			Keywords: []string{"経営", "方針", "ビジョン", "組織", "理念", "management", "vision", "strategy", "policy"},
		},
		{
			ID:       "engagement",
			Name:     "やりがい",
			Keywords: []string{"やりがい", "モチベーション", "満足", "誇り", "貢献", "motivation", "satisfaction", "engagement", "pride"},
		},
	}
}
