// Package session holds the single in-memory session: the current
// normalized upload, its analysis outputs, and user-editable state (category
// overrides and comment text). Nothing here persists across restarts; a new
// upload replaces the whole session.
package session

import (
	"sort"
	"sync"
	"time"

	"surveypulse/internal/normalizer"
	"surveypulse/pkg/contracts/domain"
)

// CommentTarget is the composite key a comment attaches to, e.g.
// ("question", key) or ("department", name).
type CommentTarget struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Comment is user-editable text attached to a target
type Comment struct {
	Target    CommentTarget `json:"target"`
	Text      string        `json:"text"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// State is the immutable-once-produced snapshot of one upload and its
// results. Exactly one of Table and Matrix is set, matching Shape.
type State struct {
	Shape             normalizer.Shape
	Table             *normalizer.CanonicalTable
	Matrix            *domain.DepartmentScoreData
	Settings          domain.Settings
	Results           []domain.AnalysisResult
	Departments       []domain.DepartmentAnalysis
	OverallByQuestion map[string]float64
}

// Store owns the session. All mutation is whole-object replacement of the
// state; the lock exists only because the HTTP surface may race a new upload
// against a read, not for any finer-grained coordination.
type Store struct {
	mu       sync.RWMutex
	state    *State
	comments map[CommentTarget]Comment
}

// NewStore creates an empty session
func NewStore() *Store {
	return &Store{comments: make(map[CommentTarget]Comment)}
}

// Replace discards the previous upload, its results, and its comments. The
// old comment targets no longer exist after a new upload, so keeping them
// would leave orphans.
func (s *Store) Replace(state *State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.comments = make(map[CommentTarget]Comment)
}

// Current returns the active state, or nil before the first upload
func (s *Store) Current() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetResults attaches computed results to the current upload. Unlike
// Replace this keeps comments; re-running analysis with new settings does
// not orphan them.
func (s *Store) SetResults(settings domain.Settings, results []domain.AnalysisResult, departments []domain.DepartmentAnalysis, overall map[string]float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return false
	}
	s.state.Settings = settings
	s.state.Results = results
	s.state.Departments = departments
	s.state.OverallByQuestion = overall
	return true
}

// Reset clears the session entirely
func (s *Store) Reset() {
	s.Replace(nil)
}

// SetCategory overrides the category of the question with the given key, in
// whichever table the session holds. Returns false when no such question
// exists.
func (s *Store) SetCategory(questionKey, categoryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return false
	}
	if s.state.Table != nil {
		for i := range s.state.Table.Questions {
			if s.state.Table.Questions[i].Key == questionKey {
				s.state.Table.Questions[i].CategoryID = categoryID
				return true
			}
		}
	}
	if s.state.Matrix != nil {
		for i := range s.state.Matrix.Questions {
			if s.state.Matrix.Questions[i].Key == questionKey {
				s.state.Matrix.Questions[i].CategoryID = categoryID
				return true
			}
		}
	}
	return false
}

// UpsertComment adds or updates the comment for a target
func (s *Store) UpsertComment(target CommentTarget, text string) Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Comment{Target: target, Text: text, UpdatedAt: time.Now()}
	s.comments[target] = c
	return c
}

// Comment returns the comment for a target, if any
func (s *Store) Comment(target CommentTarget) (Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[target]
	return c, ok
}

// Comments returns all comments, newest first
func (s *Store) Comments() []Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Comment, 0, len(s.comments))
	for _, c := range s.comments {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
