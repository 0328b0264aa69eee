package shared_test

import (
	"testing"

	"fieldbook/shared"
)

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{
			name:     "prefix only",
			prefix:   "reservation:gets",
			parts:    nil,
			expected: "reservation:gets",
		},
		{
			name:     "single part",
			prefix:   "field:get",
			parts:    []string{"field-a"},
			expected: "field:get:field-a",
		},
		{
			name:     "multiple parts",
			prefix:   "reservation:gets",
			parts:    []string{"field-a", "2024-06-01"},
			expected: "reservation:gets:field-a:2024-06-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if key := shared.BuildCacheKey(tt.prefix, tt.parts...); key != tt.expected {
				t.Errorf("expected key to be %s, got %s", tt.expected, key)
			}
		})
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("field-a", "id", "fields")

	where, args := group.GetWhereClause()

	if where != "(fields.id = :id)" {
		t.Errorf("unexpected where clause: %s", where)
	}

	if args["id"] != "field-a" {
		t.Errorf("expected args id to be 'field-a', got %v", args["id"])
	}
}
