package services

import (
	"sort"
	"time"

	"github.com/adexbam/Speak90-sub001/internal/models"
)

// SelectDue filters the collection down to the cards due on or before
// the given date, ordered by (dueDate, box, id) ascending so the oldest
// and weakest cards surface first, truncated to cap entries. A zero date
// means now; cap is clamped to zero. Pure and total.
func SelectDue(cards []models.ReviewCard, date time.Time, cap int) []models.ReviewCard {
	if date.IsZero() {
		date = time.Now()
	}
	if cap < 0 {
		cap = 0
	}
	today := Today(date)

	due := make([]models.ReviewCard, 0, len(cards))
	for _, c := range cards {
		if c.DueDate <= today {
			due = append(due, c)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if a.DueDate != b.DueDate {
			return a.DueDate < b.DueDate
		}
		if a.Box != b.Box {
			return a.Box < b.Box
		}
		return a.ID < b.ID
	})

	if len(due) > cap {
		due = due[:cap]
	}
	return due
}
