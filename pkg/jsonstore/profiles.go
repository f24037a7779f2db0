package jsonstore

import (
	"context"
	"fmt"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/db"
)

const (
	profilesCollection = "profiles"
	adminsCollection   = "admins"
)

// GetProfile retrieves a single model profile by ID
func (s *Store) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := readCollection[model.Profile](s, profilesCollection)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], nil
		}
	}
	return nil, db.ErrNotFound
}

// GetProfiles retrieves every model profile
func (s *Store) GetProfiles(ctx context.Context) ([]model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return readCollection[model.Profile](s, profilesCollection)
}

// InsertProfile appends a new model profile record
func (s *Store) InsertProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := readCollection[model.Profile](s, profilesCollection)
	if err != nil {
		return err
	}
	profiles = append(profiles, *profile)
	return writeCollection(s, profilesCollection, profiles)
}

// UpdateProfile replaces an existing model profile record by ID
func (s *Store) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := readCollection[model.Profile](s, profilesCollection)
	if err != nil {
		return err
	}
	for i := range profiles {
		if profiles[i].ID == profile.ID {
			profiles[i] = *profile
			return writeCollection(s, profilesCollection, profiles)
		}
	}
	return fmt.Errorf("update profile %s: %w", profile.ID, db.ErrNotFound)
}

// DeleteProfile removes a model profile record by ID
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := readCollection[model.Profile](s, profilesCollection)
	if err != nil {
		return err
	}
	for i := range profiles {
		if profiles[i].ID == id {
			profiles = append(profiles[:i], profiles[i+1:]...)
			return writeCollection(s, profilesCollection, profiles)
		}
	}
	return fmt.Errorf("delete profile %s: %w", id, db.ErrNotFound)
}

// GetAdminByUsername retrieves an admin account by username
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins, err := readCollection[model.Admin](s, adminsCollection)
	if err != nil {
		return nil, err
	}
	for i := range admins {
		if admins[i].Username == username {
			return &admins[i], nil
		}
	}
	return nil, db.ErrNotFound
}

// InsertAdmin appends a new admin account record
func (s *Store) InsertAdmin(ctx context.Context, admin *model.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins, err := readCollection[model.Admin](s, adminsCollection)
	if err != nil {
		return err
	}
	for _, a := range admins {
		if a.Username == admin.Username {
			return fmt.Errorf("admin %q already exists", admin.Username)
		}
	}
	admins = append(admins, *admin)
	return writeCollection(s, adminsCollection, admins)
}
