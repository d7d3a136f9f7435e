package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/color-tools/api/models"
)

// The Memory* repositories keep everything in process memory. They back
// DB_TYPE=memory for local development and the handler tests.

type MemoryUserDatabase struct {
	mu      sync.RWMutex
	users   map[string]models.User
	devices map[string]models.UserDevice
	nextID  int
}

func NewMemoryUserDatabase() *MemoryUserDatabase {
	return &MemoryUserDatabase{
		users:   make(map[string]models.User),
		devices: make(map[string]models.UserDevice),
	}
}

func noRows() error {
	return NoRowsError{true, sql.ErrNoRows}
}

func (m *MemoryUserDatabase) Create(user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return user, errors.New("user already exists")
		}
	}
	m.users[user.UserID] = user
	return user, nil
}

func (m *MemoryUserDatabase) Get(userID string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return models.User{}, noRows()
	}
	return u, nil
}

func (m *MemoryUserDatabase) find(match func(models.User) bool) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, noRows()
}

func (m *MemoryUserDatabase) GetUserByEmail(email string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *MemoryUserDatabase) GetUserByUsername(username string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Username == username })
}

func (m *MemoryUserDatabase) DeleteUserByID(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
	return nil
}

func (m *MemoryUserDatabase) Update(user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.UserID]; !ok {
		return models.User{}, noRows()
	}
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return user, nil
}

func (m *MemoryUserDatabase) ValidateAndGetUser(credentials models.Credentials) (models.User, error) {
	user, err := m.GetUserByEmail(credentials.Email)
	if err != nil {
		return models.User{}, err
	}
	if err := user.CheckPassword(credentials.Password); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (m *MemoryUserDatabase) GetAllUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func deviceKey(userID, fingerprint string) string {
	return userID + "\x00" + fingerprint
}

func (m *MemoryUserDatabase) CreateDevice(device models.UserDevice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := deviceKey(device.UserID, device.Fingerprint)
	if existing, ok := m.devices[key]; ok {
		device.ID = existing.ID
	} else {
		m.nextID++
		device.ID = strconv.Itoa(m.nextID)
	}
	m.devices[key] = device
	return nil
}

func (m *MemoryUserDatabase) GetDeviceByFingerprint(userID string, fingerprint string) (models.UserDevice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.devices[deviceKey(userID, fingerprint)]
	if !ok {
		return models.UserDevice{}, noRows()
	}
	return d, nil
}

func (m *MemoryUserDatabase) DeleteDevice(deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, d := range m.devices {
		if d.ID == deviceID {
			delete(m.devices, k)
		}
	}
	return nil
}

type MemoryPaletteDatabase struct {
	mu       sync.RWMutex
	palettes map[string]models.Palette
}

func NewMemoryPaletteDatabase() *MemoryPaletteDatabase {
	return &MemoryPaletteDatabase{palettes: make(map[string]models.Palette)}
}

func clonePalette(p models.Palette) models.Palette {
	p.Colors = append([]string(nil), p.Colors...)
	return p
}

func (m *MemoryPaletteDatabase) Create(palette models.Palette) (models.Palette, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.palettes[palette.PaletteID]; ok {
		return models.Palette{}, errors.New("failed to create palette: duplicate id")
	}
	m.palettes[palette.PaletteID] = clonePalette(palette)
	return palette, nil
}

func (m *MemoryPaletteDatabase) Get(paletteID string) (models.Palette, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.palettes[paletteID]
	if !ok {
		return models.Palette{}, noRows()
	}
	return clonePalette(p), nil
}

func (m *MemoryPaletteDatabase) GetByUser(userID string) ([]models.Palette, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	palettes := []models.Palette{}
	for _, p := range m.palettes {
		if p.UserID == userID {
			palettes = append(palettes, clonePalette(p))
		}
	}
	sort.Slice(palettes, func(i, j int) bool {
		return palettes[i].CreatedAt.After(palettes[j].CreatedAt)
	})
	return palettes, nil
}

func (m *MemoryPaletteDatabase) Delete(paletteID string, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.palettes[paletteID]
	if !ok || p.UserID != userID {
		return noRows()
	}
	delete(m.palettes, paletteID)
	return nil
}

type MemoryDailyColorDatabase struct {
	mu     sync.RWMutex
	colors []models.DailyColor
	nextID int
	now    func() time.Time
}

func NewMemoryDailyColorDatabase() *MemoryDailyColorDatabase {
	return &MemoryDailyColorDatabase{now: time.Now}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *MemoryDailyColorDatabase) Create(dailyColor models.DailyColor) (models.DailyColor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, dc := range m.colors {
		if sameDay(dc.Date, dailyColor.Date) {
			return models.DailyColor{}, fmt.Errorf("%w: %s", ErrDateTaken, dc.Date.Format("2006-01-02"))
		}
	}
	m.nextID++
	dailyColor.ID = m.nextID
	dailyColor.Date = startOfDay(dailyColor.Date)
	m.colors = append(m.colors, dailyColor)
	sort.Slice(m.colors, func(i, j int) bool {
		return m.colors[i].Date.After(m.colors[j].Date)
	})
	return dailyColor, nil
}

func (m *MemoryDailyColorDatabase) GetByDate(date time.Time) (models.DailyColor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, dc := range m.colors {
		if sameDay(dc.Date, date) {
			return dc, nil
		}
	}
	return models.DailyColor{}, noRows()
}

func (m *MemoryDailyColorDatabase) GetToday() (models.DailyColor, error) {
	return m.GetByDate(m.now())
}

func (m *MemoryDailyColorDatabase) GetAll() ([]models.DailyColor, error) {
	return m.GetRecent(-1)
}

// GetRecent returns the newest limit colors; a negative limit returns all
func (m *MemoryDailyColorDatabase) GetRecent(limit int) ([]models.DailyColor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit < 0 || limit > len(m.colors) {
		limit = len(m.colors)
	}
	return append([]models.DailyColor{}, m.colors[:limit]...), nil
}

func (m *MemoryDailyColorDatabase) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, dc := range m.colors {
		if dc.ID == id {
			m.colors = append(m.colors[:i], m.colors[i+1:]...)
			return nil
		}
	}
	return noRows()
}

var (
	_ UserRepository       = (*MemoryUserDatabase)(nil)
	_ PaletteRepository    = (*MemoryPaletteDatabase)(nil)
	_ DailyColorRepository = (*MemoryDailyColorDatabase)(nil)
	_ UserRepository       = UserDatabase{}
	_ PaletteRepository    = PaletteDatabase{}
	_ DailyColorRepository = DailyColorDatabase{}
)
