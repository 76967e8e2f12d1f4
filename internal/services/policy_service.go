package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lovemypet/backend/internal/markdown"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
)

// RenderedPolicy is a policy with its markdown content converted to HTML.
type RenderedPolicy struct {
	models.Policy
	HTML string `json:"html"`
}

type PolicyService struct {
	policies storage.Repository[models.Policy]
	renderer *markdown.Renderer
	now      func() time.Time
}

func NewPolicyService(stores *storage.Stores, renderer *markdown.Renderer) *PolicyService {
	return &PolicyService{policies: stores.Policies, renderer: renderer, now: time.Now}
}

// List returns policies; inactive ones only when includeArchived is set.
func (s *PolicyService) List(ctx context.Context, includeArchived bool) ([]models.Policy, error) {
	return storage.Filter(ctx, s.policies, func(p models.Policy) bool {
		return includeArchived || p.Status == models.PolicyActive
	})
}

func (s *PolicyService) Get(ctx context.Context, id string) (models.Policy, error) {
	p, err := s.policies.Get(ctx, id)
	if err != nil {
		return models.Policy{}, mapNotFound(err, ErrPolicyNotFound)
	}
	return p, nil
}

func (s *PolicyService) Render(ctx context.Context, id string) (RenderedPolicy, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return RenderedPolicy{}, err
	}
	html, err := s.renderer.Render(p.Content)
	if err != nil {
		return RenderedPolicy{}, fmt.Errorf("failed to render policy %s: %w", id, err)
	}
	return RenderedPolicy{Policy: p, HTML: html}, nil
}

// UpdateContent replaces the whole document.
func (s *PolicyService) UpdateContent(ctx context.Context, id, title, content string) (models.Policy, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Policy{}, err
	}
	if title != "" {
		p.Title = title
	}
	p.Content = content
	p.LastUpdated = s.now().UTC()
	return s.policies.Update(ctx, p)
}

func (s *PolicyService) SetStatus(ctx context.Context, id string, status models.PolicyStatus) (models.Policy, error) {
	if status != models.PolicyActive && status != models.PolicyArchived {
		return models.Policy{}, validationError("invalid policy status %q", status)
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Policy{}, err
	}
	p.Status = status
	p.LastUpdated = s.now().UTC()
	return s.policies.Update(ctx, p)
}
