package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	"github.com/campuscare/PSC-SchedulingService/pkg/types"
)

// 2025-03-10 - понедельник
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func mondayWindow(start, end string) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		ID:         1,
		ProviderID: 42,
		Weekday:    time.Monday,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		Active:     true,
	}
}

func TestGenerateSlots_SingleWindow(t *testing.T) {
	windows := []*domain.AvailabilityWindow{mondayWindow("09:00", "12:00")}

	slots, err := generateSlots(42, windows, nil, monday, monday, 30)
	require.NoError(t, err)

	// 09:00-12:00 с шагом 30 минут: ровно шесть слотов
	require.Len(t, slots, 6)
	assert.Equal(t, monday.Add(9*time.Hour), slots[0].StartAt)
	assert.Equal(t, monday.Add(11*time.Hour+30*time.Minute), slots[5].StartAt)

	for _, s := range slots {
		assert.Equal(t, int64(42), s.ProviderID)
		assert.Equal(t, 30, s.DurationMinutes)
	}
}

func TestGenerateSlots_BookedSlotExcluded(t *testing.T) {
	windows := []*domain.AvailabilityWindow{mondayWindow("09:00", "12:00")}
	appointments := []*domain.Appointment{
		{
			ID:              7,
			ProviderID:      42,
			StartAt:         monday.Add(10 * time.Hour),
			DurationMinutes: 30,
			Status:          domain.StatusScheduled,
		},
	}

	slots, err := generateSlots(42, windows, appointments, monday, monday, 30)
	require.NoError(t, err)

	require.Len(t, slots, 5)
	for _, s := range slots {
		assert.NotEqual(t, monday.Add(10*time.Hour), s.StartAt)
	}
}

func TestGenerateSlots_CancelledAppointmentFreesSlot(t *testing.T) {
	windows := []*domain.AvailabilityWindow{mondayWindow("09:00", "12:00")}
	appointments := []*domain.Appointment{
		{
			ID:              7,
			ProviderID:      42,
			StartAt:         monday.Add(10 * time.Hour),
			DurationMinutes: 30,
			Status:          domain.StatusCancelled,
		},
	}

	slots, err := generateSlots(42, windows, appointments, monday, monday, 30)
	require.NoError(t, err)

	assert.Len(t, slots, 6)
}

func TestGenerateSlots_WindowShorterThanDuration(t *testing.T) {
	windows := []*domain.AvailabilityWindow{mondayWindow("09:00", "09:45")}

	slots, err := generateSlots(42, windows, nil, monday, monday, 60)
	require.NoError(t, err)

	// Частичных слотов нет: окно короче длительности не даёт ни одного
	assert.Empty(t, slots)
}

func TestGenerateSlots_NoPartialSlotAtWindowEnd(t *testing.T) {
	windows := []*domain.AvailabilityWindow{mondayWindow("09:00", "10:45")}

	slots, err := generateSlots(42, windows, nil, monday, monday, 30)
	require.NoError(t, err)

	// 09:00, 09:30, 10:00; слот 10:30-11:00 выходит за конец окна
	require.Len(t, slots, 3)
	assert.Equal(t, monday.Add(10*time.Hour), slots[2].StartAt)
}

func TestGenerateSlots_MultipleDays(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	windows := []*domain.AvailabilityWindow{
		mondayWindow("09:00", "10:00"),
		{
			ID:         2,
			ProviderID: 42,
			Weekday:    time.Tuesday,
			StartTime:  types.TimeString("14:00"),
			EndTime:    types.TimeString("15:00"),
			Active:     true,
		},
	}

	slots, err := generateSlots(42, windows, nil, monday, tuesday, 60)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(9*time.Hour), slots[0].StartAt)
	assert.Equal(t, tuesday.Add(14*time.Hour), slots[1].StartAt)
}

func TestGenerateSlots_WeekdayWithoutWindowIsEmpty(t *testing.T) {
	// Окно только на понедельник, запрошено воскресенье
	sunday := monday.AddDate(0, 0, -1)
	windows := []*domain.AvailabilityWindow{mondayWindow("09:00", "12:00")}

	slots, err := generateSlots(42, windows, nil, sunday, sunday, 30)
	require.NoError(t, err)

	assert.Empty(t, slots)
}

func TestGenerateSlots_OrderedByStart(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		mondayWindow("09:00", "11:00"),
		mondayWindow("14:00", "16:00"),
	}
	windows[1].ID = 2

	slots, err := generateSlots(42, windows, nil, monday, monday.AddDate(0, 0, 7), 60)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartAt.Before(slots[i].StartAt),
			"slots must be ordered: %s before %s", slots[i-1].StartAt, slots[i].StartAt)
	}
}
