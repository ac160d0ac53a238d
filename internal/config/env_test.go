package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("ERRBLAST_TEST_STR", "hello")
	if got := GetEnv("ERRBLAST_TEST_STR", "fallback"); got != "hello" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("ERRBLAST_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv unset = %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("ERRBLAST_TEST_INT", "42")
	if got := GetEnvInt("ERRBLAST_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt = %d", got)
	}
	t.Setenv("ERRBLAST_TEST_INT", "nope")
	if got := GetEnvInt("ERRBLAST_TEST_INT", 7); got != 7 {
		t.Errorf("GetEnvInt malformed = %d", got)
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("ERRBLAST_TEST_FLOAT", "2.5")
	if got := GetEnvFloat("ERRBLAST_TEST_FLOAT", 1); got != 2.5 {
		t.Errorf("GetEnvFloat = %v", got)
	}
	if got := GetEnvFloat("ERRBLAST_TEST_FLOAT_UNSET", 1.5); got != 1.5 {
		t.Errorf("GetEnvFloat unset = %v", got)
	}
}
