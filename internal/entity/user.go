package entity

import "time"

// DefaultDailyGoal is the number of new words a user aims to add per day
// when they have not configured one.
const DefaultDailyGoal int32 = 5

// UserProfile holds per-user settings.
type UserProfile struct {
	UserID    int64
	DailyGoal int32
	UpdatedAt time.Time
}

// Normalize ensures defaults before persistence.
func (p *UserProfile) Normalize(now time.Time) {
	if p.DailyGoal <= 0 {
		p.DailyGoal = DefaultDailyGoal
	}
	p.UpdatedAt = now
}
