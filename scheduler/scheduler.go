package scheduler

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/color-tools/api/colorcode"
	"github.com/color-tools/api/datastore"
	"github.com/color-tools/api/models"
)

type Scheduler struct {
	DailyColorRepo datastore.DailyColorRepository
	Names          *colorcode.NameTable

	// Now and Rand are replaceable for tests
	Now  func() time.Time
	Rand *rand.Rand

	mu       sync.Mutex
	timer    *time.Timer
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func NewScheduler(repo datastore.DailyColorRepository, names *colorcode.NameTable) *Scheduler {
	if names == nil {
		names = colorcode.DefaultNames()
	}
	return &Scheduler{
		DailyColorRepo: repo,
		Names:          names,
		Now:            time.Now,
		Rand:           rand.New(rand.NewSource(time.Now().UnixNano())),
		done:           make(chan struct{}),
	}
}

// UntilMidnight returns the time left until the next local midnight
func UntilMidnight(now time.Time) time.Duration {
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return nextMidnight.Sub(now)
}

// Start generates today's color if missing, then runs at midnight every day
func (s *Scheduler) Start() {
	if _, err := s.GenerateDailyColor(); err != nil {
		log.Printf("Error generating daily color on start: %v", err)
	}

	durationUntilMidnight := UntilMidnight(s.Now())
	log.Printf("Scheduler started. Next daily color generation in %v", durationUntilMidnight)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = time.AfterFunc(durationUntilMidnight, func() {
		s.mu.Lock()
		select {
		case <-s.done:
			s.mu.Unlock()
			return
		default:
		}
		s.ticker = time.NewTicker(24 * time.Hour)
		ticker := s.ticker
		s.mu.Unlock()

		s.generateAndLog()
		go func() {
			for {
				select {
				case <-ticker.C:
					s.generateAndLog()
				case <-s.done:
					return
				}
			}
		}()
	})
}

// Stop stops the scheduler. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
		}
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
		s.mu.Unlock()
		log.Println("Scheduler stopped")
	})
}

func (s *Scheduler) generateAndLog() {
	if _, err := s.GenerateDailyColor(); err != nil {
		log.Printf("Error generating daily color: %v", err)
	}
}

// GenerateDailyColor picks a random color for today, names it after the
// nearest named color and saves it. An existing color for today is
// returned unchanged.
func (s *Scheduler) GenerateDailyColor() (models.DailyColor, error) {
	log.Println("Generating daily color...")

	now := s.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	existingColor, err := s.DailyColorRepo.GetByDate(today)
	if err == nil && existingColor.ID != 0 {
		log.Printf("Daily color already exists for %s: %s", today.Format("2006-01-02"), existingColor.ColorName)
		return existingColor, nil
	}
	if err != nil && !datastore.IsNoRows(err) {
		return models.DailyColor{}, err
	}

	s.mu.Lock()
	v := s.Rand.Intn(1 << 24)
	s.mu.Unlock()
	c := colorcode.FromRGB(uint8(v>>16), uint8(v>>8), uint8(v))
	match := s.Names.Nearest(c)
	if match.Name == "" {
		return models.DailyColor{}, errors.New("named color table is empty")
	}

	dailyColor := models.NewDailyColor(today, c, match)
	dailyColor.CreatedAt = now

	savedColor, err := s.DailyColorRepo.Create(dailyColor)
	if errors.Is(err, datastore.ErrDateTaken) {
		// another instance won the race for today
		log.Printf("Daily color for %s was saved concurrently, using it", today.Format("2006-01-02"))
		return s.DailyColorRepo.GetByDate(today)
	}
	if err != nil {
		log.Printf("Error saving daily color to database: %v", err)
		return models.DailyColor{}, err
	}

	log.Printf("Successfully generated daily color: #%s named %s (distance %.2f) for %s",
		savedColor.Hex, savedColor.ColorName, savedColor.Distance,
		savedColor.Date.Format("2006-01-02"))

	return savedColor, nil
}
