package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("KOKATON_TEST_HOST", "example.org")

	if got := GetEnv("KOKATON_TEST_HOST", "fallback"); got != "example.org" {
		t.Errorf("GetEnv set: got %q, want %q", got, "example.org")
	}
	if got := GetEnv("KOKATON_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv unset: got %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("KOKATON_TEST_SEED", " 42 ")
	t.Setenv("KOKATON_TEST_BAD", "forty")

	if got := GetEnvInt("KOKATON_TEST_SEED", 7); got != 42 {
		t.Errorf("GetEnvInt valid: got %d, want 42", got)
	}
	if got := GetEnvInt("KOKATON_TEST_BAD", 7); got != 7 {
		t.Errorf("GetEnvInt invalid: got %d, want fallback 7", got)
	}
	if got := GetEnvInt("KOKATON_TEST_UNSET", 7); got != 7 {
		t.Errorf("GetEnvInt unset: got %d, want fallback 7", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	cases := map[string]bool{
		"1":     true,
		"TRUE":  true,
		"on":    true,
		"0":     false,
		"false": false,
		"":      false,
	}
	for value, want := range cases {
		t.Setenv("KOKATON_TEST_BOOL", value)
		if got := GetEnvBool("KOKATON_TEST_BOOL", !want); got != want {
			t.Errorf("GetEnvBool(%q): got %v, want %v", value, got, want)
		}
	}

	t.Setenv("KOKATON_TEST_BOOL", "maybe")
	if got := GetEnvBool("KOKATON_TEST_BOOL", true); !got {
		t.Errorf("GetEnvBool unparseable: got %v, want fallback true", got)
	}
}
