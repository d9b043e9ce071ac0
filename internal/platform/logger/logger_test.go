package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"api_key", "sk-live-123",
		"congress_id", "abc",
		"apiKeys", map[string]interface{}{"openai": "sk-1"},
		"dangling",
	})
	if len(out) != 7 {
		t.Fatalf("len=%d want 7", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("api_key not redacted: %v", out[1])
	}
	if out[3] != "abc" {
		t.Fatalf("congress_id changed: %v", out[3])
	}
	if out[5] != "[REDACTED]" {
		t.Fatalf("apiKeys not redacted: %v", out[5])
	}
	if out[6] != "dangling" {
		t.Fatalf("dangling key lost: %v", out[6])
	}
}

func TestSanitizeKeepsEmptySecret(t *testing.T) {
	out := sanitizeKVs([]interface{}{"password", ""})
	if out[1] != "" {
		t.Fatalf("empty secret should stay empty, got %v", out[1])
	}
}

func TestNewTestModeIsNop(t *testing.T) {
	l, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("discarded", "k", "v")
	l.Sync()
}
