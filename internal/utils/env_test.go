package utils

import (
	"testing"
	"time"
)

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL_TRUE", "yes")
	t.Setenv("TEST_BOOL_FALSE", "0")
	t.Setenv("TEST_BOOL_GARBAGE", "maybe")

	if !GetEnvAsBool("TEST_BOOL_TRUE", false) {
		t.Error("yes should parse as true")
	}
	if GetEnvAsBool("TEST_BOOL_FALSE", true) {
		t.Error("0 should parse as false")
	}
	if !GetEnvAsBool("TEST_BOOL_GARBAGE", true) {
		t.Error("garbage should fall back to the default")
	}
	if GetEnvAsBool("TEST_BOOL_UNSET", false) {
		t.Error("unset should fall back to the default")
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")

	if got := GetEnvAsInt("TEST_INT", 7); got != 42 {
		t.Errorf("got %d", got)
	}
	if got := GetEnvAsInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("got %d, want default", got)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	t.Setenv("TEST_DUR_BAD", "soon")

	if got := GetEnvAsDuration("TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("got %v", got)
	}
	if got := GetEnvAsDuration("TEST_DUR_BAD", time.Minute); got != time.Minute {
		t.Errorf("got %v, want default", got)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.25")
	if got := GetEnvAsFloat("TEST_FLOAT", 1.0); got != 0.25 {
		t.Errorf("got %v", got)
	}
	if got := GetEnvAsFloat("TEST_FLOAT_UNSET", 1.0); got != 1.0 {
		t.Errorf("got %v, want default", got)
	}
}
