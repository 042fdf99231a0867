package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/perentie/stride/basis"
)

func TestDefaultTuning(t *testing.T) {
	d := Default()
	if d.Speed != 240 {
		t.Fatalf("default speed = %v", d.Speed)
	}
	if d.Walk.FloatHeight != 26 || d.Walk.CoyoteTime != 0.15 {
		t.Fatalf("default walk config looks wrong: %+v", d.Walk)
	}
	if d.Jump.Height != 96 || d.Jump.Gravity != 1500 {
		t.Fatalf("default jump config looks wrong: %+v", d.Jump)
	}
	if d.FreeFall.Behavior != basis.FreeFallExtraGravity {
		t.Fatalf("default free fall behavior = %v", d.FreeFall.Behavior)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cases := []struct {
		name  string
		input string
		check func(t *testing.T, got Tuning)
	}{
		{
			name:  "partial_walk_override",
			input: "bases:\n  walk:\n    float_height: 40\n",
			check: func(t *testing.T, got Tuning) {
				if got.Walk.FloatHeight != 40 {
					t.Fatalf("float height = %v, want 40", got.Walk.FloatHeight)
				}
				if got.Walk.SpringStrength != Default().Walk.SpringStrength {
					t.Fatalf("untouched fields must keep defaults")
				}
			},
		},
		{
			name:  "speed_only",
			input: "speed: 300\n",
			check: func(t *testing.T, got Tuning) {
				if got.Speed != 300 {
					t.Fatalf("speed = %v, want 300", got.Speed)
				}
				if got.Jump != Default().Jump {
					t.Fatalf("jump config must keep defaults")
				}
			},
		},
		{
			name:  "unknown_section_ignored",
			input: "bases:\n  swim:\n    depth: 3\n  walk:\n    coyote_time: 0.3\n",
			check: func(t *testing.T, got Tuning) {
				if got.Walk.CoyoteTime != 0.3 {
					t.Fatalf("coyote time = %v, want 0.3", got.Walk.CoyoteTime)
				}
			},
		},
		{
			name:  "free_fall_behavior",
			input: "bases:\n  free_fall:\n    behavior: like_jump_fall\n",
			check: func(t *testing.T, got Tuning) {
				if got.FreeFall.Behavior != basis.FreeFallLikeJumpFall {
					t.Fatalf("behavior = %v", got.FreeFall.Behavior)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse([]byte(tc.input))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tc.check(t, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("bases: [not, a, map]")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
	if _, err := Parse([]byte("bases:\n  free_fall:\n    behavior: moonwalk\n")); err == nil {
		t.Fatalf("expected error for unknown behavior")
	}
}

func TestLoad(t *testing.T) {
	got, err := Load("")
	if err != nil || got != Default() {
		t.Fatalf("empty path should yield defaults, got %+v err=%v", got, err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("speed: 111\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Speed != 111 {
		t.Fatalf("speed = %v, want 111", got.Speed)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDecode(t *testing.T) {
	raw := map[string]any{"float_height": 33.0, "coyote_time": 0.25}
	cfg, err := Decode[basis.WalkConfig](raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.FloatHeight != 33 || cfg.CoyoteTime != 0.25 {
		t.Fatalf("decoded %+v", cfg)
	}

	if cfg, err := Decode[basis.WalkConfig](nil); err != nil || cfg != (basis.WalkConfig{}) {
		t.Fatalf("nil raw should decode to zero value, got %+v err=%v", cfg, err)
	}
}

func TestWatcherReportsTuningChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// A non-watched extension first: it must never surface, so the yaml
	// write below is the first event we see.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("speed: 200\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("event for %q, want %q", got, path)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no event within timeout")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
}
