package stats_test

import (
	"testing"
	"time"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/stats"
)

func TestDayOf_FollowsBarbershopClock(t *testing.T) {
	// 01:30 UTC ainda é o dia anterior em São Paulo (UTC-3).
	at := time.Date(2026, 6, 10, 1, 30, 0, 0, time.UTC)

	if got := stats.DayOf("America/Sao_Paulo", at); got != "2026-06-09" {
		t.Fatalf("day = %q, want 2026-06-09", got)
	}
	if got := stats.DayOf("UTC", at); got != "2026-06-10" {
		t.Fatalf("day = %q, want 2026-06-10", got)
	}
}

func TestDayOf_InvalidTimezoneFallsBack(t *testing.T) {
	at := time.Date(2026, 6, 10, 1, 30, 0, 0, time.UTC)

	// Timezone inválido cai no default (São Paulo).
	if got := stats.DayOf("Marte/Olympus", at); got != "2026-06-09" {
		t.Fatalf("day = %q, want 2026-06-09", got)
	}
}

func TestMonthBounds(t *testing.T) {
	at := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	from, to := stats.MonthBounds("America/Sao_Paulo", at)
	if from != "2026-06-01" || to != "2026-07-01" {
		t.Fatalf("bounds = [%q, %q), want [2026-06-01, 2026-07-01)", from, to)
	}
}

func TestMonthBounds_YearRollover(t *testing.T) {
	at := time.Date(2026, 12, 20, 12, 0, 0, 0, time.UTC)

	from, to := stats.MonthBounds("America/Sao_Paulo", at)
	if from != "2026-12-01" || to != "2027-01-01" {
		t.Fatalf("bounds = [%q, %q), want [2026-12-01, 2027-01-01)", from, to)
	}
}

func TestMonthBounds_TimezoneShiftsMonth(t *testing.T) {
	// 01:00 UTC do dia 1º ainda é o mês anterior em São Paulo.
	at := time.Date(2026, 7, 1, 1, 0, 0, 0, time.UTC)

	from, to := stats.MonthBounds("America/Sao_Paulo", at)
	if from != "2026-06-01" || to != "2026-07-01" {
		t.Fatalf("bounds = [%q, %q), want [2026-06-01, 2026-07-01)", from, to)
	}
}
