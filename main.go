package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/color-tools/api/api"
	"github.com/color-tools/api/colorcode"
	"github.com/color-tools/api/datastore"
	"github.com/color-tools/api/migrations"
	"github.com/color-tools/api/scheduler"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := loadConfig()

	names, err := buildNameTable(config)
	if err != nil {
		log.Fatalf("Failed to load named colors: %v", err)
	}
	log.Printf("Loaded %d named colors (metric %s)", names.Len(), metricName(config.ColorMetric))

	app := &api.Application{
		Config:    config,
		Converter: colorcode.NewConverter(names),
	}

	if config.DatabaseType == "memory" {
		log.Println("Using in-memory repositories; data is lost on restart")
		app.UserRepo = datastore.NewMemoryUserDatabase()
		app.DailyColorRepo = datastore.NewMemoryDailyColorDatabase()
		app.PaletteRepo = datastore.NewMemoryPaletteDatabase()
	} else {
		dbConn, err := openDatabase(config)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbConn.Close()

		if err := attachRepositories(app, dbConn); err != nil {
			log.Fatalf("Failed to create repositories: %v", err)
		}
	}

	// Start scheduler for daily color generation
	app.Scheduler = scheduler.NewScheduler(app.DailyColorRepo, names)
	app.Scheduler.Start()

	mux := http.NewServeMux()

	fmt.Println("Color Tools API Starting...")
	if err := app.Serve(mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func loadConfig() api.Config {
	return api.Config{
		HTTPPort:           getEnv("HTTP_PORT", ":8080"),
		DatabaseType:       getEnv("DB_TYPE", "postgres"),
		DatabaseHost:       getEnv("DB_HOST", "localhost:5432"),
		DatabaseUser:       getEnv("DB_USER", "postgres"),
		DatabasePassword:   getEnv("DB_PASSWORD", ""),
		DatabaseName:       getEnv("DB_NAME", "colortools"),
		SSLMode:            getEnv("SSL_MODE", "disable"),
		JwtSecret:          getEnv("JWT_SECRET", "your-secret-key-change-this"),
		JwtAccessDuration:  getEnvInt("JWT_ACCESS_DURATION", 900),     // 15 minutes
		JwtRefreshDuration: getEnvInt("JWT_REFRESH_DURATION", 604800), // 7 days
		JwtDomain:          getEnv("JWT_DOMAIN", ""),
		AllowedOrigins:     getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		DevMode:            getEnvBool("DEV_MODE", true),
		NamedColorsFile:    getEnv("NAMED_COLORS_FILE", ""),
		ColorMetric:        getEnv("COLOR_METRIC", "rgb"),
		MaxUUIDBatch:       getEnvInt("MAX_UUID_BATCH", 1000),
	}
}

// buildNameTable returns the bundled names under the configured metric,
// extended with NamedColorsFile when set
func buildNameTable(config api.Config) (*colorcode.NameTable, error) {
	metric, err := colorcode.MetricByName(config.ColorMetric)
	if err != nil {
		return nil, err
	}
	names := colorcode.DefaultNames().WithMetric(metric)

	if config.NamedColorsFile == "" {
		return names, nil
	}
	extra, err := colorcode.LoadNamesFile(config.NamedColorsFile)
	if err != nil {
		return nil, err
	}
	return names.Extend(extra), nil
}

func metricName(name string) string {
	if name == "" {
		return "rgb"
	}
	return name
}

func openDatabase(config api.Config) (*sql.DB, error) {
	connStr := datastore.BuildDBConnStr(
		config.DatabaseHost,
		config.DatabasePassword,
		config.DatabaseUser,
		config.DatabaseName,
		config.SSLMode,
	)

	dbConn, err := datastore.NewDB(config.DatabaseType, connStr)
	if err != nil {
		return nil, err
	}

	// Run database migrations
	fmt.Println("Running database migrations...")
	if err := migrations.RunMigrations(dbConn); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return dbConn, nil
}

func attachRepositories(app *api.Application, dbConn *sql.DB) error {
	userRepo, err := datastore.NewUserDatabase(dbConn)
	if err != nil {
		return fmt.Errorf("user repository: %w", err)
	}

	dailyColorRepo, err := datastore.NewDailyColorDatabase(dbConn)
	if err != nil {
		return fmt.Errorf("daily color repository: %w", err)
	}

	paletteRepo, err := datastore.NewPaletteDatabase(dbConn)
	if err != nil {
		return fmt.Errorf("palette repository: %w", err)
	}

	app.UserRepo = userRepo
	app.DailyColorRepo = dailyColorRepo
	app.PaletteRepo = paletteRepo
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvSlice(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	parts := strings.Split(value, ",")
	origins := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
