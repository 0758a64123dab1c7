package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEvent(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		transparency string
		tags         map[string]string
		want         EventKind
	}{
		{
			name:  "availability tag wins",
			title: "RDV - Marie Dupont",
			tags:  map[string]string{TagAvailabilitySlot: "true"},
			want:  EventKindAvailability,
		},
		{
			name:         "appointment tag beats transparency",
			title:        "whatever",
			transparency: TransparencyTransparent,
			tags:         map[string]string{TagAppointment: "true"},
			want:         EventKindAppointment,
		},
		{
			name:  "explicit false availability tag means appointment",
			title: "🟢 DISPONIBLE",
			tags:  map[string]string{TagAvailabilitySlot: "false"},
			want:  EventKindAppointment,
		},
		{
			name:         "transparent event is availability",
			title:        "untitled",
			transparency: TransparencyTransparent,
			want:         EventKindAvailability,
		},
		{
			name:         "opaque falls through to title",
			title:        "🟢 DISPONIBLE",
			transparency: TransparencyOpaque,
			want:         EventKindAvailability,
		},
		{
			name:  "disponible keyword case-insensitive",
			title: "Créneaux Disponibles matin",
			want:  EventKindAvailability,
		},
		{
			name:  "green circle marker",
			title: "🟢 matin",
			want:  EventKindAvailability,
		},
		{
			name:  "rdv keyword",
			title: "RDV - Jean Martin",
			want:  EventKindAppointment,
		},
		{
			name:  "hospital marker",
			title: "🏥 RDV - Jean Martin",
			want:  EventKindAppointment,
		},
		{
			name:  "consultation keyword",
			title: "Consultation de suivi",
			want:  EventKindAppointment,
		},
		{
			name:  "unrecognized title is other",
			title: "Déjeuner avec Paul",
			want:  EventKindOther,
		},
		{
			name:  "empty event is other",
			title: "",
			want:  EventKindOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEvent(tt.title, tt.transparency, tt.tags))
		})
	}
}

func TestCalendarEvent_IsBusy(t *testing.T) {
	avail := CalendarEvent{Kind: EventKindAvailability}
	assert.False(t, avail.IsBusy())

	appt := CalendarEvent{Kind: EventKindAppointment}
	assert.True(t, appt.IsBusy())

	other := CalendarEvent{Kind: EventKindOther}
	assert.True(t, other.IsBusy())
}

func TestCalendarEvent_Overlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 10, h, m, 0, 0, time.UTC)
	}
	e := CalendarEvent{StartTime: at(10, 0), EndTime: at(11, 0)}

	assert.True(t, e.Overlaps(at(10, 30), at(11, 30)))
	assert.True(t, e.Overlaps(at(9, 30), at(10, 30)))
	assert.True(t, e.Overlaps(at(9, 0), at(12, 0)))
	assert.True(t, e.Overlaps(at(10, 15), at(10, 45)))

	// Touching boundaries do not overlap
	assert.False(t, e.Overlaps(at(9, 0), at(10, 0)))
	assert.False(t, e.Overlaps(at(11, 0), at(12, 0)))
	assert.False(t, e.Overlaps(at(8, 0), at(9, 0)))
}
