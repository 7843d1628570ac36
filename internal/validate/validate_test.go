package validate

import (
	"reflect"
	"testing"
)

func TestMissing(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		provided map[string]any
		want     []string
	}{
		{
			name:     "all present",
			required: []string{"sender_id", "receiver_id", "message_text"},
			provided: map[string]any{"sender_id": "a", "receiver_id": "b", "message_text": "hi"},
			want:     nil,
		},
		{
			name:     "absent key",
			required: []string{"sender_id", "receiver_id"},
			provided: map[string]any{"sender_id": "a"},
			want:     []string{"receiver_id"},
		},
		{
			name:     "empty string",
			required: []string{"sender_id", "message_text"},
			provided: map[string]any{"sender_id": "a", "message_text": ""},
			want:     []string{"message_text"},
		},
		{
			name:     "whitespace string",
			required: []string{"sender_id"},
			provided: map[string]any{"sender_id": "   "},
			want:     []string{"sender_id"},
		},
		{
			name:     "nil value",
			required: []string{"sender_id"},
			provided: map[string]any{"sender_id": nil},
			want:     []string{"sender_id"},
		},
		{
			name:     "zero id from json number",
			required: []string{"message_id", "sender_id"},
			provided: map[string]any{"message_id": float64(0), "sender_id": "a"},
			want:     []string{"message_id"},
		},
		{
			name:     "negative id",
			required: []string{"message_id"},
			provided: map[string]any{"message_id": int64(-3)},
			want:     []string{"message_id"},
		},
		{
			name:     "positive id",
			required: []string{"message_id"},
			provided: map[string]any{"message_id": float64(7)},
			want:     nil,
		},
		{
			name:     "preserves required order",
			required: []string{"message_id", "sender_id", "message_text"},
			provided: map[string]any{"sender_id": "a"},
			want:     []string{"message_id", "message_text"},
		},
		{
			name:     "extra provided keys ignored",
			required: []string{"sender_id"},
			provided: map[string]any{"sender_id": "a", "unexpected": "x"},
			want:     nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Missing(tc.required, tc.provided)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Missing(%v, %v) = %v, want %v", tc.required, tc.provided, got, tc.want)
			}
		})
	}
}

func TestMissingError(t *testing.T) {
	got := MissingError([]string{"sender_id", "message_text"})
	want := "Missing fields: sender_id, message_text"
	if got != want {
		t.Fatalf("MissingError = %q, want %q", got, want)
	}
}
