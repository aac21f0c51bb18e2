// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolver

import (
	"context"
	"strings"

	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
)

// minKeywordOverlap is the smallest keyword match count that counts as a
// resolution. A single shared keyword is too weak a signal for linking an
// insight to a project.
const minKeywordOverlap = 2

// Resolver maps free-text project mentions to canonical projects.
// Matching runs over an in-memory snapshot of the project table; call
// Refresh to pick up newly added projects.
type Resolver struct {
	repository storage.ProjectRepository
	projects   []*core.Project
}

// NewResolver creates a resolver with an initial snapshot of all projects.
func NewResolver(ctx context.Context, repository storage.ProjectRepository) (*Resolver, error) {
	if repository == nil {
		return nil, ErrProjectRepositoryRequired
	}

	r := &Resolver{repository: repository}
	if err := r.Refresh(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh reloads the project snapshot from storage.
func (r *Resolver) Refresh(ctx context.Context) error {
	projects, err := r.repository.ListProjects(ctx)
	if err != nil {
		return err
	}
	r.projects = projects
	return nil
}

// Resolve maps a free-text mention to a project ID.
// Matching order: exact name, alias membership, then keyword overlap
// scored by match count above a minimum threshold. Ties are broken by the
// most recently updated project. An unresolved mention returns ok=false;
// it is a common outcome, not an error.
func (r *Resolver) Resolve(mention string) (core.ID, bool) {
	mention = strings.TrimSpace(mention)
	if mention == "" {
		return 0, false
	}
	lowered := strings.ToLower(mention)

	// Exact name match.
	if p := r.firstMatch(func(p *core.Project) bool {
		return strings.ToLower(p.Name) == lowered
	}); p != nil {
		return p.Id, true
	}

	// Alias membership.
	if p := r.firstMatch(func(p *core.Project) bool {
		for _, alias := range p.Aliases {
			if strings.ToLower(alias) == lowered {
				return true
			}
		}
		return false
	}); p != nil {
		return p.Id, true
	}

	// Keyword overlap: count keywords that appear in the mention.
	var best *core.Project
	bestScore := 0
	for _, p := range r.projects {
		score := 0
		for _, keyword := range p.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, keyword) {
				score++
			}
		}
		if score < minKeywordOverlap {
			continue
		}
		if best == nil || score > bestScore ||
			(score == bestScore && p.UpdatedAt.After(best.UpdatedAt)) {
			best = p
			bestScore = score
		}
	}
	if best != nil {
		return best.Id, true
	}

	return 0, false
}

// firstMatch returns the matching project, preferring the most recently
// updated one when several match.
func (r *Resolver) firstMatch(match func(*core.Project) bool) *core.Project {
	var found *core.Project
	for _, p := range r.projects {
		if !match(p) {
			continue
		}
		if found == nil || p.UpdatedAt.After(found.UpdatedAt) {
			found = p
		}
	}
	return found
}
