package jsonutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestUnmarshal(t *testing.T) {
	t.Run("config object", func(t *testing.T) {
		var result map[string]any
		err := Unmarshal([]byte(`{"instance_url":"https://echoctf.red","_identity-red":"abc"}`), &result)
		if err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if result["_identity-red"] != "abc" {
			t.Errorf("expected _identity-red=abc, got %v", result["_identity-red"])
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		var result map[string]any
		if err := Unmarshal([]byte(`{invalid}`), &result); err == nil {
			t.Error("Unmarshal() expected error for invalid JSON")
		}
	})

	t.Run("unknown members ignored", func(t *testing.T) {
		var result struct {
			Name string `json:"name"`
		}
		if err := Unmarshal([]byte(`{"name":"x","extra":1}`), &result); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if result.Name != "x" {
			t.Errorf("expected name=x, got %q", result.Name)
		}
	})
}

func TestEncoder(t *testing.T) {
	type target struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	}

	var buf bytes.Buffer
	err := NewStreamEncoder(&buf).Encode([]target{{Name: "Vulnerable Web Server", ID: "12"}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := `[{"name":"Vulnerable Web Server","id":"12"}]` + "\n"
	if buf.String() != want {
		t.Errorf("Encode() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := NewStreamEncoder(&buf).SetIndent("", "  ").Encode(target{Name: "a", ID: "1"}); err != nil {
		t.Fatalf("Encode() indented error = %v", err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") || !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("expected indented output with trailing newline, got %q", buf.String())
	}
}
