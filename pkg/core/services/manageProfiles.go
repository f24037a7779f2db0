package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/scheduling"
)

// ProfileWriteStore defines the database operations needed for profile writes
type ProfileWriteStore interface {
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	GetProfiles(ctx context.Context) ([]model.Profile, error)
	InsertProfile(ctx context.Context, profile *model.Profile) error
	UpdateProfile(ctx context.Context, profile *model.Profile) error
	DeleteProfile(ctx context.Context, id string) error
}

// ProfileInput carries the fields for creating or replacing a model profile
type ProfileInput struct {
	FirstName string
	LastName  string
	Division  string
	Status    string

	Email     string
	Phone     string
	Location  string
	Instagram string

	HeightCM  int
	Bust      string
	Waist     string
	Hips      string
	ShoeSize  string
	HairColor string
	EyeColor  string
	Notes     string
}

// CreateProfile validates and persists a new model profile
func CreateProfile(ctx context.Context, store ProfileWriteStore, logger *zap.Logger, input ProfileInput) (*model.Profile, error) {
	profile := profileFromInput(input)
	profile.ID = uuid.New().String()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	if profile.Status == "" {
		profile.Status = model.ProfileActive
	}

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := store.InsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	logger.Info("Profile created",
		zap.String("profile_id", profile.ID),
		zap.String("division", profile.Division))

	return profile, nil
}

// UpdateProfile replaces the mutable fields of an existing profile
func UpdateProfile(ctx context.Context, store ProfileWriteStore, logger *zap.Logger, id string, input ProfileInput) (*model.Profile, error) {
	existing, err := store.GetProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	profile := profileFromInput(input)
	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now()
	if profile.Status == "" {
		profile.Status = existing.Status
	}

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := store.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	logger.Info("Profile updated", zap.String("profile_id", profile.ID))

	return profile, nil
}

// DeleteProfile removes a profile. Calendar events keep their modelId and
// simply stop resolving to a name; there is no cascade.
func DeleteProfile(ctx context.Context, store ProfileWriteStore, logger *zap.Logger, id string) error {
	if err := store.DeleteProfile(ctx, id); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	logger.Info("Profile deleted", zap.String("profile_id", id))
	return nil
}

// Division groups the active profiles shown on one board category
type Division struct {
	Name     string
	Profiles []model.Profile
}

// ListBoard returns the public model board: active profiles grouped by
// division, divisions and members alphabetized
func ListBoard(ctx context.Context, store ProfileWriteStore, logger *zap.Logger) ([]Division, error) {
	profiles, err := store.GetProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	byDivision := make(map[string][]model.Profile)
	for _, p := range profiles {
		if p.Status != model.ProfileActive {
			continue
		}
		byDivision[p.Division] = append(byDivision[p.Division], p)
	}

	names := make([]string, 0, len(byDivision))
	for name := range byDivision {
		names = append(names, name)
	}
	sort.Strings(names)

	board := make([]Division, 0, len(names))
	for _, name := range names {
		members := byDivision[name]
		sort.Slice(members, func(i, j int) bool {
			if members[i].LastName != members[j].LastName {
				return members[i].LastName < members[j].LastName
			}
			return members[i].FirstName < members[j].FirstName
		})
		board = append(board, Division{Name: name, Profiles: members})
	}

	logger.Debug("Board listed", zap.Int("divisions", len(board)))

	return board, nil
}

// SubmissionInput carries a public application from the submission form
type SubmissionInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Location  string
	Instagram string
	HeightCM  int
	Notes     string
}

// SubmitApplication records a public submission as a pending profile for
// admin review. Pending profiles never appear on the board.
func SubmitApplication(ctx context.Context, store ProfileWriteStore, logger *zap.Logger, input SubmissionInput) (*model.Profile, error) {
	profile := &model.Profile{
		ID:        uuid.New().String(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Division:  "unassigned",
		Status:    model.ProfilePending,
		Email:     input.Email,
		Phone:     input.Phone,
		Location:  input.Location,
		Instagram: input.Instagram,
		HeightCM:  input.HeightCM,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := store.InsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to insert submission: %w", err)
	}

	logger.Info("Submission received",
		zap.String("profile_id", profile.ID),
		zap.String("name", profile.FullName()))

	return profile, nil
}

func profileFromInput(input ProfileInput) *model.Profile {
	return &model.Profile{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Division:  input.Division,
		Status:    model.ProfileStatus(input.Status),
		Email:     input.Email,
		Phone:     input.Phone,
		Location:  input.Location,
		Instagram: input.Instagram,
		HeightCM:  input.HeightCM,
		Bust:      input.Bust,
		Waist:     input.Waist,
		Hips:      input.Hips,
		ShoeSize:  input.ShoeSize,
		HairColor: input.HairColor,
		EyeColor:  input.EyeColor,
		Notes:     input.Notes,
	}
}

func validateProfile(profile *model.Profile) error {
	if profile.FirstName == "" && profile.LastName == "" {
		return &scheduling.InvalidInputError{Field: "firstName", Value: "", Reason: "a name is required"}
	}
	if profile.Division == "" {
		return &scheduling.InvalidInputError{Field: "division", Value: "", Reason: "required"}
	}
	if !profile.Status.IsValid() {
		return &scheduling.InvalidInputError{Field: "status", Value: string(profile.Status), Reason: "unknown status"}
	}
	return nil
}
