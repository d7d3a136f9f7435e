package datastore

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/color-tools/api/models"
)

type PaletteRepository interface {
	Create(palette models.Palette) (models.Palette, error)
	Get(paletteID string) (models.Palette, error)
	GetByUser(userID string) ([]models.Palette, error)
	Delete(paletteID string, userID string) error
}

type PaletteDatabase struct {
	database *sql.DB
}

func NewPaletteDatabase(db *sql.DB) (PaletteDatabase, error) {
	var paletteDB PaletteDatabase
	paletteDB.database = db
	return paletteDB, nil
}

func scanPalette(row rowScanner) (models.Palette, error) {
	var palette models.Palette
	err := row.Scan(
		&palette.PaletteID,
		&palette.UserID,
		&palette.Name,
		pq.Array(&palette.Colors),
		&palette.CreatedAt,
		&palette.UpdatedAt,
	)

	switch err {
	case sql.ErrNoRows:
		return models.Palette{}, NoRowsError{true, err}
	case nil:
		return palette, nil
	default:
		return models.Palette{}, err
	}
}

// Create inserts a palette
func (pdb PaletteDatabase) Create(palette models.Palette) (models.Palette, error) {
	db := pdb.database

	sqlStatement := `
		INSERT INTO palettes (palette_id, user_id, name, colors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := db.Exec(
		sqlStatement,
		palette.PaletteID,
		palette.UserID,
		palette.Name,
		pq.Array(palette.Colors),
		palette.CreatedAt,
		palette.UpdatedAt,
	)
	if err != nil {
		return models.Palette{}, fmt.Errorf("failed to create palette: %v", err)
	}

	return palette, nil
}

// Get retrieves a palette by ID
func (pdb PaletteDatabase) Get(paletteID string) (models.Palette, error) {
	sqlStatement := `
		SELECT palette_id, user_id, name, colors, created_at, updated_at
		FROM palettes
		WHERE palette_id = $1`

	return scanPalette(pdb.database.QueryRow(sqlStatement, paletteID))
}

// GetByUser retrieves a user's palettes, newest first
func (pdb PaletteDatabase) GetByUser(userID string) ([]models.Palette, error) {
	sqlStatement := `
		SELECT palette_id, user_id, name, colors, created_at, updated_at
		FROM palettes
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := pdb.database.Query(sqlStatement, userID)
	if err != nil {
		return []models.Palette{}, err
	}
	defer rows.Close()

	palettes := []models.Palette{}
	for rows.Next() {
		palette, err := scanPalette(rows)
		if err != nil {
			return []models.Palette{}, err
		}
		palettes = append(palettes, palette)
	}

	if err = rows.Err(); err != nil {
		return []models.Palette{}, err
	}

	return palettes, nil
}

// Delete removes a palette owned by userID
func (pdb PaletteDatabase) Delete(paletteID string, userID string) error {
	result, err := pdb.database.Exec(`DELETE FROM palettes WHERE palette_id = $1 AND user_id = $2`, paletteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete palette: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return NoRowsError{true, sql.ErrNoRows}
	}

	return nil
}
