package api

import (
	"encoding/json"
	"net/http"

	"github.com/color-tools/api/colorcode"
	"github.com/color-tools/api/datastore"
	"github.com/color-tools/api/scheduler"
)

type Config struct {
	HTTPPort           string
	DatabaseType       string
	DatabaseHost       string
	DatabaseUser       string
	DatabasePassword   string
	DatabaseName       string
	SSLMode            string
	JwtSecret          string
	JwtAccessDuration  int // seconds
	JwtRefreshDuration int // seconds
	JwtDomain          string
	AllowedOrigins     []string
	DevMode            bool
	NamedColorsFile    string
	ColorMetric        string
	MaxUUIDBatch       int
}

type Application struct {
	Config         Config
	UserRepo       datastore.UserRepository
	DailyColorRepo datastore.DailyColorRepository
	PaletteRepo    datastore.PaletteRepository
	Converter      *colorcode.Converter
	Scheduler      *scheduler.Scheduler
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
