package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
)

// placeholder returns a placeholder for SQLite (uses ?)
func placeholder(n int) string {
	return "?"
}

// placeholders returns n placeholders for SQLite
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}

func marshalChecks(checks map[string]bool) (string, error) {
	if checks == nil {
		checks = map[string]bool{}
	}
	buf, err := json.Marshal(checks)
	if err != nil {
		return "", fmt.Errorf("failed to marshal checks: %w", err)
	}
	return string(buf), nil
}

func unmarshalChecks(raw string) (map[string]bool, error) {
	checks := map[string]bool{}
	if raw == "" {
		return checks, nil
	}
	if err := json.Unmarshal([]byte(raw), &checks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checks: %w", err)
	}
	return checks, nil
}

func marshalExercises(completed map[int]bool) (string, error) {
	if completed == nil {
		completed = map[int]bool{}
	}
	buf, err := json.Marshal(completed)
	if err != nil {
		return "", fmt.Errorf("failed to marshal exercises: %w", err)
	}
	return string(buf), nil
}

func unmarshalExercises(raw string) (map[int]bool, error) {
	completed := map[int]bool{}
	if raw == "" {
		return completed, nil
	}
	if err := json.Unmarshal([]byte(raw), &completed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exercises: %w", err)
	}
	return completed, nil
}

// nullableFolder maps an update's folder value: empty string clears the
// column.
func nullableFolder(v string) any {
	if v == "" {
		return nil
	}
	return v
}
