package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2024, time.March, 15, 17, 45, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		completed bool
		due       time.Time
		want      Status
	}{
		{"completed late is still completed", true, date(2020, time.January, 1), StatusCompleted},
		{"completed in future", true, date(2030, time.January, 1), StatusCompleted},
		{"due yesterday is overdue", false, date(2024, time.March, 14), StatusOverdue},
		{"due long ago is overdue", false, date(1999, time.December, 31), StatusOverdue},
		{"due today is pending", false, date(2024, time.March, 15), StatusPending},
		{"due today late evening is pending", false, time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC), StatusPending},
		{"due far future is pending", false, date(2100, time.June, 1), StatusPending},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.completed, tc.due, today))
		})
	}
}

func TestDeriveStatus_ComparesInTodaysLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	today := time.Date(2024, time.March, 15, 8, 0, 0, 0, loc)

	// 03:00 UTC on the 15th is still the 14th at UTC-5.
	due := time.Date(2024, time.March, 15, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusOverdue, DeriveStatus(false, due, today))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Upcoming", StatusPending.Label())
	assert.Equal(t, "Overdue", StatusOverdue.Label())
	assert.Equal(t, "Completed", StatusCompleted.Label())
}

func TestClassifyFilterSort(t *testing.T) {
	today := date(2024, time.March, 15)
	tasks := []model.MaintenanceTask{
		{ID: "c", Title: "Oil", DueDate: date(2024, time.March, 20)},
		{ID: "a", Title: "Filter", DueDate: date(2024, time.March, 1)},
		{ID: "d", Title: "Belt", DueDate: date(2024, time.March, 1), IsCompleted: true},
		{ID: "b", Title: "Blade", DueDate: date(2024, time.March, 20)},
	}

	views := Classify(tasks, today)
	SortByDueDate(views)

	var ids []string
	for _, v := range views {
		ids = append(ids, v.Task.ID)
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids)

	assert.Len(t, Filter(views, FilterAll), 4)
	assert.Len(t, Filter(views, FilterUpcoming), 2)
	overdue := Filter(views, FilterOverdue)
	if assert.Len(t, overdue, 1) {
		assert.Equal(t, "a", overdue[0].Task.ID)
	}
	assert.Len(t, Filter(views, FilterCompleted), 1)

	assert.Equal(t, Summary{Overdue: 1, Pending: 2, Completed: 1}, Summarize(views))
}
