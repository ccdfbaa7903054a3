package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFrame(t *testing.T) {
	m := NewCollector()

	m.RecordFrame(false, time.Millisecond)
	m.RecordFrame(false, time.Millisecond)
	m.RecordFrame(true, time.Millisecond)

	if got := testutil.ToFloat64(m.framesTotal.WithLabelValues("running")); got != 2 {
		t.Errorf("running frames = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.framesTotal.WithLabelValues("paused")); got != 1 {
		t.Errorf("paused frames = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.frameDuration); n != 1 {
		t.Errorf("histogram series = %d, want 1", n)
	}
}

func TestRecordPick(t *testing.T) {
	m := NewCollector()

	m.RecordPick(true)
	m.RecordPick(false)
	m.RecordPick(false)

	if got := testutil.ToFloat64(m.picksTotal.WithLabelValues(PickHit)); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.picksTotal.WithLabelValues(PickMiss)); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
}

func TestControlAndPointerEvents(t *testing.T) {
	m := NewCollector()

	m.ControlEvent("pause")
	m.ControlEvent("pause")
	m.ControlEvent("theme")
	m.RecordPointerEvent()
	m.SetPlanetsVisible(6)

	if got := testutil.ToFloat64(m.controlsTotal.WithLabelValues("pause")); got != 2 {
		t.Errorf("pause events = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.pointerEvents); got != 1 {
		t.Errorf("pointer events = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.planetsVisible); got != 6 {
		t.Errorf("planets visible = %v, want 6", got)
	}
}

func TestRegistryGathers(t *testing.T) {
	m := NewCollector()
	m.RecordFrame(false, 0)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "orrery_frames_total" {
			found = true
		}
	}
	if !found {
		t.Error("orrery_frames_total not gathered")
	}

	// Independent collectors must not collide on registration.
	_ = NewCollector()
}

func TestWriteText(t *testing.T) {
	m := NewCollector()
	m.RecordPick(true)
	m.ControlEvent("theme")

	var buf bytes.Buffer
	if err := m.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# TYPE orrery_picks_total counter",
		`orrery_picks_total{result="hit"} 1`,
		`orrery_control_events_total{control="theme"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
