package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

func TestLoadSampleSpace(t *testing.T) {
	space, err := loadSpace("")
	if err != nil {
		t.Fatalf("loadSpace failed: %v", err)
	}

	for _, ref := range []model.EntityRef{
		model.StandardRef(2253),
		refServiceLevel,
		refStartTime,
		refCurrentTime,
		model.StandardRef(2294),
	} {
		if _, err := space.Lookup(ref); err != nil {
			t.Errorf("Lookup(%s) failed: %v", ref, err)
		}
	}

	v, err := space.ReadAttribute(refServiceLevel, model.KeyValue)
	if err != nil {
		t.Fatalf("ReadAttribute failed: %v", err)
	}
	if v != uint8(255) {
		t.Errorf("ServiceLevel = %v, want 255", v)
	}
}

func TestLoadSpaceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "space.yaml")
	data := []byte("root:\n  ref: i=85\n  browseName: Objects\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	space, err := loadSpace(path)
	if err != nil {
		t.Fatalf("loadSpace failed: %v", err)
	}
	if space.Len() != 1 {
		t.Errorf("Len() = %d, want 1", space.Len())
	}

	if _, err := loadSpace(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Address: "127.0.0.1:4840", LogLevel: "info"}, false},
		{"debug", Config{Address: ":0", LogLevel: "DEBUG"}, false},
		{"empty address", Config{LogLevel: "info"}, true},
		{"bad level", Config{Address: ":0", LogLevel: "verbose"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBindServerStatus(t *testing.T) {
	space, err := loadSpace("")
	if err != nil {
		t.Fatal(err)
	}

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	bindServerStatus(space, started)

	v, err := space.ReadAttribute(refStartTime, model.KeyValue)
	if err != nil {
		t.Fatalf("read StartTime: %v", err)
	}
	if got, ok := v.(time.Time); !ok || !got.Equal(started) {
		t.Errorf("StartTime = %v, want %v", v, started)
	}

	before := time.Now().UTC()
	v, err = space.ReadAttribute(refCurrentTime, model.KeyValue)
	if err != nil {
		t.Fatalf("read CurrentTime: %v", err)
	}
	got, ok := v.(time.Time)
	if !ok || got.Before(before) {
		t.Errorf("CurrentTime = %v, want at or after %v", v, before)
	}
}

func TestServiceLevelAt(t *testing.T) {
	tests := []struct {
		step int
		want uint8
	}{
		{0, 255},
		{1, 245},
		{10, 155},
		{11, 165},
		{20, 255},
	}
	for _, tt := range tests {
		if got := serviceLevelAt(tt.step); got != tt.want {
			t.Errorf("serviceLevelAt(%d) = %d, want %d", tt.step, got, tt.want)
		}
	}
}
