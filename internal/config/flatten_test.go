package config

import (
	"reflect"
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want map[string]any
	}{
		{
			name: "top level keys pass through",
			in:   map[string]any{"outfile": "steps/Steps_Recorded.html", "log_level": "info"},
			want: map[string]any{"outfile": "steps/Steps_Recorded.html", "log_level": "info"},
		},
		{
			name: "sections become dot keys",
			in: map[string]any{
				"image":     map[string]any{"format": "jpeg", "quality": 80.0},
				"log_level": "info",
			},
			want: map[string]any{
				"image.format":  "jpeg",
				"image.quality": 80.0,
				"log_level":     "info",
			},
		},
		{
			name: "deep nesting joins every level",
			in:   map[string]any{"a": map[string]any{"b": map[string]any{"c": "deep"}}},
			want: map[string]any{"a.b.c": "deep"},
		},
		{
			name: "mixed value types survive",
			in: map[string]any{
				"autosave": map[string]any{"enabled": true, "schedule": "@every 30s"},
				"marker":   map[string]any{"scale": 1.5},
			},
			want: map[string]any{
				"autosave.enabled":  true,
				"autosave.schedule": "@every 30s",
				"marker.scale":      1.5,
			},
		},
		{
			name: "empty map",
			in:   map[string]any{},
			want: map[string]any{},
		},
		{
			name: "empty section produces no keys",
			in:   map[string]any{"image": map[string]any{}},
			want: map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnflatten(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want map[string]any
	}{
		{
			name: "top level keys pass through",
			in:   map[string]any{"outfile": "steps/Steps_Recorded.html"},
			want: map[string]any{"outfile": "steps/Steps_Recorded.html"},
		},
		{
			name: "dot keys rebuild sections",
			in: map[string]any{
				"marker.path":     "resources/Cursor.png",
				"marker.anchor_x": 4.0,
				"log_level":       "info",
			},
			want: map[string]any{
				"marker":    map[string]any{"path": "resources/Cursor.png", "anchor_x": 4.0},
				"log_level": "info",
			},
		},
		{
			name: "deep keys rebuild every level",
			in:   map[string]any{"a.b.c": "deep"},
			want: map[string]any{"a": map[string]any{"b": map[string]any{"c": "deep"}}},
		},
		{
			name: "empty map",
			in:   map[string]any{},
			want: map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unflatten(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unflatten(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	original := map[string]any{
		"outfile":   "steps/Steps_Recorded.html",
		"log_level": "debug",
		"marker": map[string]any{
			"path":  "resources/Cursor.png",
			"scale": 1.5,
		},
		"image": map[string]any{
			"format":  "png",
			"quality": 90.0,
		},
	}

	restored := Unflatten(Flatten(original))
	if !reflect.DeepEqual(restored, original) {
		t.Errorf("round trip mismatch:\n got  %v\n want %v", restored, original)
	}
}
