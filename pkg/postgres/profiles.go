package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/db"
)

const profileColumns = `id, first_name, last_name, division, status, email, phone, location,
	instagram, height_cm, bust, waist, hips, shoe_size, hair_color, eye_color, notes,
	created_at, updated_at`

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	var email, phone, location, instagram *string
	var bust, waist, hips, shoeSize, hairColor, eyeColor, notes *string
	var heightCM *int

	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Division, &p.Status, &email, &phone, &location,
		&instagram, &heightCM, &bust, &waist, &hips, &shoeSize, &hairColor, &eyeColor, &notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&p.Email, email)
	setString(&p.Phone, phone)
	setString(&p.Location, location)
	setString(&p.Instagram, instagram)
	setString(&p.Bust, bust)
	setString(&p.Waist, waist)
	setString(&p.Hips, hips)
	setString(&p.ShoeSize, shoeSize)
	setString(&p.HairColor, hairColor)
	setString(&p.EyeColor, eyeColor)
	setString(&p.Notes, notes)
	if heightCM != nil {
		p.HeightCM = *heightCM
	}

	return &p, nil
}

// GetProfile retrieves a single model profile by ID
func (d *DB) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profile WHERE id = $1`, id)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return p, nil
}

// GetProfiles retrieves every model profile
func (d *DB) GetProfiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+profileColumns+` FROM profile ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

// InsertProfile inserts a new model profile record
func (d *DB) InsertProfile(ctx context.Context, p *model.Profile) error {
	var heightCM *int
	if p.HeightCM != 0 {
		heightCM = &p.HeightCM
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO profile (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`,
		p.ID, p.FirstName, p.LastName, p.Division, string(p.Status),
		nullable(p.Email), nullable(p.Phone), nullable(p.Location), nullable(p.Instagram),
		heightCM, nullable(p.Bust), nullable(p.Waist), nullable(p.Hips), nullable(p.ShoeSize),
		nullable(p.HairColor), nullable(p.EyeColor), nullable(p.Notes),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// UpdateProfile replaces an existing model profile record by ID
func (d *DB) UpdateProfile(ctx context.Context, p *model.Profile) error {
	var heightCM *int
	if p.HeightCM != 0 {
		heightCM = &p.HeightCM
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE profile SET
			first_name = $2, last_name = $3, division = $4, status = $5,
			email = $6, phone = $7, location = $8, instagram = $9, height_cm = $10,
			bust = $11, waist = $12, hips = $13, shoe_size = $14,
			hair_color = $15, eye_color = $16, notes = $17, updated_at = $18
		WHERE id = $1
	`,
		p.ID, p.FirstName, p.LastName, p.Division, string(p.Status),
		nullable(p.Email), nullable(p.Phone), nullable(p.Location), nullable(p.Instagram),
		heightCM, nullable(p.Bust), nullable(p.Waist), nullable(p.Hips), nullable(p.ShoeSize),
		nullable(p.HairColor), nullable(p.EyeColor), nullable(p.Notes), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update profile %s: %w", p.ID, db.ErrNotFound)
	}
	return nil
}

// DeleteProfile removes a model profile record by ID
func (d *DB) DeleteProfile(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM profile WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete profile %s: %w", id, db.ErrNotFound)
	}
	return nil
}

// GetAdminByUsername retrieves an admin account by username
func (d *DB) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	var role *string
	err := d.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM admin_account
		WHERE username = $1
	`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &role, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}
	if role != nil {
		a.Role = *role
	}
	return &a, nil
}

// InsertAdmin inserts a new admin account record
func (d *DB) InsertAdmin(ctx context.Context, a *model.Admin) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO admin_account (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.Username, a.PasswordHash, nullable(a.Role), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	return nil
}
