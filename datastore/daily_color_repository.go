package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/color-tools/api/models"
	_ "github.com/lib/pq"
)

// ErrDateTaken is returned by Create when the day already has a color.
var ErrDateTaken = errors.New("daily color already exists for that date")

// DailyColorRepository stores at most one color per calendar day. Dates
// are truncated to midnight in their own location.
type DailyColorRepository interface {
	Create(dailyColor models.DailyColor) (models.DailyColor, error)
	GetByDate(date time.Time) (models.DailyColor, error)
	GetToday() (models.DailyColor, error)
	GetAll() ([]models.DailyColor, error)
	// GetRecent returns the newest limit colors, newest first. A
	// negative limit returns all of them.
	GetRecent(limit int) ([]models.DailyColor, error)
	Delete(id int) error
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

const dailyColorColumns = `id, date, hex, color_name, name_hex, distance, created_at`

func scanDailyColor(row rowScanner) (models.DailyColor, error) {
	var dc models.DailyColor
	err := row.Scan(
		&dc.ID,
		&dc.Date,
		&dc.Hex,
		&dc.ColorName,
		&dc.NameHex,
		&dc.Distance,
		&dc.CreatedAt,
	)
	return dc, err
}

type DailyColorDatabase struct {
	database *sql.DB
	now      func() time.Time
}

func NewDailyColorDatabase(db *sql.DB) (DailyColorDatabase, error) {
	return DailyColorDatabase{database: db, now: time.Now}, nil
}

// Create saves dailyColor unless its day is already taken, in which case
// the error wraps ErrDateTaken.
func (dcdb DailyColorDatabase) Create(dailyColor models.DailyColor) (models.DailyColor, error) {
	dailyColor.Date = startOfDay(dailyColor.Date)

	err := dcdb.database.QueryRow(`
		INSERT INTO daily_color (date, hex, color_name, name_hex, distance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (date) DO NOTHING
		RETURNING id`,
		dailyColor.Date,
		dailyColor.Hex,
		dailyColor.ColorName,
		dailyColor.NameHex,
		dailyColor.Distance,
		dailyColor.CreatedAt,
	).Scan(&dailyColor.ID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.DailyColor{}, fmt.Errorf("%w: %s", ErrDateTaken, dailyColor.Date.Format("2006-01-02"))
	case err != nil:
		return models.DailyColor{}, fmt.Errorf("failed to create daily color: %v", err)
	}
	return dailyColor, nil
}

func (dcdb DailyColorDatabase) GetByDate(date time.Time) (models.DailyColor, error) {
	row := dcdb.database.QueryRow(
		`SELECT `+dailyColorColumns+` FROM daily_color WHERE date = $1`,
		startOfDay(date),
	)

	dc, err := scanDailyColor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyColor{}, NoRowsError{true, err}
	}
	return dc, err
}

func (dcdb DailyColorDatabase) GetToday() (models.DailyColor, error) {
	return dcdb.GetByDate(dcdb.now())
}

func (dcdb DailyColorDatabase) GetAll() ([]models.DailyColor, error) {
	return dcdb.GetRecent(-1)
}

func (dcdb DailyColorDatabase) GetRecent(limit int) ([]models.DailyColor, error) {
	// LIMIT NULL is no limit
	var n sql.NullInt64
	if limit >= 0 {
		n = sql.NullInt64{Int64: int64(limit), Valid: true}
	}

	rows, err := dcdb.database.Query(
		`SELECT `+dailyColorColumns+` FROM daily_color ORDER BY date DESC LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dailyColors := []models.DailyColor{}
	for rows.Next() {
		dc, err := scanDailyColor(rows)
		if err != nil {
			return nil, err
		}
		dailyColors = append(dailyColors, dc)
	}
	return dailyColors, rows.Err()
}

// Delete removes the color with the given id. A missing id is a no-rows
// error.
func (dcdb DailyColorDatabase) Delete(id int) error {
	res, err := dcdb.database.Exec(`DELETE FROM daily_color WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return noRows()
	}
	return nil
}
