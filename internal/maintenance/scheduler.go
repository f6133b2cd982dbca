// Package maintenance schedules and enforces maintenance windows: periods
// during which the API is closed to everyone without the
// maintenance:manage permission.
package maintenance

import (
	"log"
	"sync"
	"time"

	"github.com/vestra-app/vestrago/internal/database"
	"github.com/vestra-app/vestrago/internal/models"
)

// Broadcaster pushes maintenance transitions to connected admin consoles.
// Satisfied by websocket.Hub.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Scheduler flips scheduled windows active at StartsAt and completes active
// windows at EndsAt, keeping the current window cached for the HTTP gate.
type Scheduler struct {
	db  *database.DB
	hub Broadcaster

	mu      sync.RWMutex
	current *models.MaintenanceWindow

	stop chan struct{}
	done chan struct{}
}

// NewScheduler creates a scheduler. hub may be nil in tools that only need
// window queries.
func NewScheduler(db *database.DB, hub Broadcaster) *Scheduler {
	return &Scheduler{
		db:   db,
		hub:  hub,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start runs the ticker loop in the background. An initial sweep runs
// immediately so windows that went due while the server was down are
// applied at boot.
func (s *Scheduler) Start() {
	s.sweep()
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
	log.Println("✅ Maintenance scheduler started")
}

// Stop halts the ticker loop and waits for it to exit
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

// Current returns the active window, or nil when the system is open
func (s *Scheduler) Current() *models.MaintenanceWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Refresh re-reads window state immediately. Handlers call this after
// scheduling or cancelling so the gate reacts without waiting for the tick.
func (s *Scheduler) Refresh() {
	s.sweep()
}

// sweep applies due transitions and refreshes the cached current window
func (s *Scheduler) sweep() {
	now := time.Now().UTC()

	// scheduled -> active
	var due []models.MaintenanceWindow
	if err := s.db.Where("status = ? AND starts_at <= ?", models.MaintenanceScheduled, now).Find(&due).Error; err == nil {
		for i := range due {
			due[i].Status = models.MaintenanceActive
			if err := s.db.Save(&due[i]).Error; err != nil {
				log.Printf("⚠️  Maintenance: could not activate window %d: %v", due[i].ID, err)
				continue
			}
			log.Printf("🔧 Maintenance window %d active: %s", due[i].ID, due[i].Message)
			s.broadcast("maintenance.started", due[i])
		}
	}

	// active -> completed (only windows with an end time)
	var expired []models.MaintenanceWindow
	if err := s.db.Where("status = ? AND ends_at IS NOT NULL AND ends_at <= ?", models.MaintenanceActive, now).Find(&expired).Error; err == nil {
		for i := range expired {
			expired[i].Status = models.MaintenanceCompleted
			if err := s.db.Save(&expired[i]).Error; err != nil {
				log.Printf("⚠️  Maintenance: could not complete window %d: %v", expired[i].ID, err)
				continue
			}
			log.Printf("✅ Maintenance window %d completed", expired[i].ID)
			s.broadcast("maintenance.ended", expired[i])
		}
	}

	var active models.MaintenanceWindow
	err := s.db.Where("status = ?", models.MaintenanceActive).Order("starts_at").First(&active).Error

	s.mu.Lock()
	if err == nil {
		s.current = &active
	} else {
		s.current = nil
	}
	s.mu.Unlock()
}

func (s *Scheduler) broadcast(event string, window models.MaintenanceWindow) {
	if s.hub != nil {
		s.hub.Broadcast(event, window)
	}
}
