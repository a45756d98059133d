package testutil

import (
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Clock is a settable clock for expiry tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func CreateUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Plan returns the seeded plan lasting days.
func Plan(t *testing.T, db *gorm.DB, days int) *entity.SubscriptionPlan {
	t.Helper()
	var plan entity.SubscriptionPlan
	require.NoError(t, db.Where("duration_days = ?", days).First(&plan).Error)
	return &plan
}

func Manila(t *testing.T) *time.Location {
	t.Helper()
	location, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	return location
}
