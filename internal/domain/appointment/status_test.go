package appointment_test

import (
	"testing"
	"time"

	appointment "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/domain/appointment"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httperr"
)

func TestInitialStatus(t *testing.T) {
	if got := appointment.InitialStatus(); got != appointment.StatusPending {
		t.Fatalf("initial status = %q, want pending", got)
	}
}

func TestTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    appointment.Status
		check   func(appointment.Status) error
		allowed bool
	}{
		{"confirm pending", appointment.StatusPending, appointment.CanConfirm, true},
		{"confirm confirmed", appointment.StatusConfirmed, appointment.CanConfirm, false},
		{"confirm completed", appointment.StatusCompleted, appointment.CanConfirm, false},
		{"confirm cancelled", appointment.StatusCancelled, appointment.CanConfirm, false},

		{"complete pending", appointment.StatusPending, appointment.CanComplete, false},
		{"complete confirmed", appointment.StatusConfirmed, appointment.CanComplete, true},
		{"complete completed", appointment.StatusCompleted, appointment.CanComplete, false},
		{"complete cancelled", appointment.StatusCancelled, appointment.CanComplete, false},

		{"cancel pending", appointment.StatusPending, appointment.CanCancel, true},
		{"cancel confirmed", appointment.StatusConfirmed, appointment.CanCancel, true},
		{"cancel completed", appointment.StatusCompleted, appointment.CanCancel, false},
		{"cancel cancelled", appointment.StatusCancelled, appointment.CanCancel, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check(tc.from)
			if tc.allowed && err != nil {
				t.Fatalf("transition should be allowed, got %v", err)
			}
			if !tc.allowed {
				if !httperr.IsBusiness(err, "invalid_state") {
					t.Fatalf("err = %v, want invalid_state", err)
				}
			}
		})
	}
}

func TestComplete_FieldsCarryTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	fields, err := appointment.Complete(appointment.StatusConfirmed, now)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if fields["status"] != string(appointment.StatusCompleted) {
		t.Fatalf("status field = %v, want completed", fields["status"])
	}
	if fields["completed_at"] != now {
		t.Fatalf("completed_at = %v, want %v", fields["completed_at"], now)
	}
}

func TestCancel_FieldsCarryTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	fields, err := appointment.Cancel(appointment.StatusPending, now)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if fields["status"] != string(appointment.StatusCancelled) {
		t.Fatalf("status field = %v, want cancelled", fields["status"])
	}
	if fields["cancelled_at"] != now {
		t.Fatalf("cancelled_at = %v, want %v", fields["cancelled_at"], now)
	}
}
