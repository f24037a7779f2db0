package jsonstore

import (
	"context"
	"fmt"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/db"
)

const rulesCollection = "alert_rules"

// GetRule retrieves a single alert rule by ID
func (s *Store) GetRule(ctx context.Context, id string) (*model.AlertRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := readCollection[model.AlertRule](s, rulesCollection)
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if rules[i].ID == id {
			return &rules[i], nil
		}
	}
	return nil, db.ErrNotFound
}

// GetRules retrieves every alert rule, enabled or not
func (s *Store) GetRules(ctx context.Context) ([]model.AlertRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return readCollection[model.AlertRule](s, rulesCollection)
}

// GetEnabledRules retrieves only rules whose enabled gate is set
func (s *Store) GetEnabledRules(ctx context.Context) ([]model.AlertRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := readCollection[model.AlertRule](s, rulesCollection)
	if err != nil {
		return nil, err
	}

	enabled := []model.AlertRule{}
	for _, r := range rules {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	return enabled, nil
}

// InsertRule appends a new alert rule record
func (s *Store) InsertRule(ctx context.Context, rule *model.AlertRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := readCollection[model.AlertRule](s, rulesCollection)
	if err != nil {
		return err
	}
	rules = append(rules, *rule)
	return writeCollection(s, rulesCollection, rules)
}

// UpdateRule replaces an existing alert rule record by ID
func (s *Store) UpdateRule(ctx context.Context, rule *model.AlertRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := readCollection[model.AlertRule](s, rulesCollection)
	if err != nil {
		return err
	}
	for i := range rules {
		if rules[i].ID == rule.ID {
			rules[i] = *rule
			return writeCollection(s, rulesCollection, rules)
		}
	}
	return fmt.Errorf("update rule %s: %w", rule.ID, db.ErrNotFound)
}

// DeleteRule removes an alert rule record by ID
func (s *Store) DeleteRule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := readCollection[model.AlertRule](s, rulesCollection)
	if err != nil {
		return err
	}
	for i := range rules {
		if rules[i].ID == id {
			rules = append(rules[:i], rules[i+1:]...)
			return writeCollection(s, rulesCollection, rules)
		}
	}
	return fmt.Errorf("delete rule %s: %w", id, db.ErrNotFound)
}
