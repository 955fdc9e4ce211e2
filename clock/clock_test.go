package clock

import (
	"testing"
	"time"
)

func TestNewClockDefaultsUnsynchronisedUTC(t *testing.T) {
	c := New()
	if c.Synchronised() {
		t.Fatal("new clock should be unsynchronised")
	}
	if c.Timezone() != "UTC" {
		t.Fatalf("got timezone %q, want UTC", c.Timezone())
	}
}

func TestNowAdvancesMonoOnEveryCall(t *testing.T) {
	c := New()
	a := c.Now()
	time.Sleep(2 * time.Millisecond)
	b := c.Now()
	if b.Mono <= a.Mono {
		t.Fatalf("expected strictly increasing Mono, got %d then %d", a.Mono, b.Mono)
	}
}

func TestNowReportsUnixSecondsDistinctFromMono(t *testing.T) {
	c := New()
	now := c.Now()
	want := time.Now().Unix()
	if now.Unix < want-2 || now.Unix > want+2 {
		t.Fatalf("Unix = %d, want within 2s of %d", now.Unix, want)
	}
	if now.Unix == now.Mono {
		t.Fatal("Unix (epoch seconds) should not equal Mono (a millisecond hint)")
	}
}

func TestMarkSynchronised(t *testing.T) {
	c := New()
	c.MarkSynchronised()
	if !c.Synchronised() {
		t.Fatal("expected synchronised after MarkSynchronised")
	}
}

func TestSetTimezoneAppliesLocation(t *testing.T) {
	c := New()
	if err := c.SetTimezone("Europe/London"); err != nil {
		t.Fatalf("SetTimezone: %v", err)
	}
	if c.Timezone() != "Europe/London" {
		t.Fatalf("got %q", c.Timezone())
	}
}

func TestSetTimezoneRejectsUnknownZone(t *testing.T) {
	c := New()
	if err := c.SetTimezone("Not/AZone"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
	if c.Timezone() != "UTC" {
		t.Fatalf("failed SetTimezone should not change the active zone, got %q", c.Timezone())
	}
}
