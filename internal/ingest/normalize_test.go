package ingest

import (
  "testing"
)

func TestNormalizeKey(t *testing.T) {
  cases := []struct {
    in   string
    want string
  }{
    {"Age Min", "age_min"},
    {" age-min ", "age_min"},
    {"AGE_MIN", "age_min"},
    {"plan_id", "policy_id"},
    {"Plan ID", "policy_id"},
    {"Outpatient Coverage Percentage", "outpatient_coverage_percentage"},
  }
  for _, c := range cases {
    if got := NormalizeKey(c.in); got != c.want {
      t.Errorf("NormalizeKey(%q) = %q, want %q", c.in, got, c.want)
    }
  }
}

func TestSafeInt(t *testing.T) {
  cases := []struct {
    in     any
    want   int
    wantOK bool
  }{
    {30, 30, true},
    {"30", 30, true},
    {"30.0", 30, true},
    {" 30 ", 30, true},
    {float64(30), 30, true},
    {"thirty", 0, false},
    {"", 0, false},
    {nil, 0, false},
  }
  for _, c := range cases {
    got, ok := SafeInt(c.in, 0)
    if got != c.want || ok != c.wantOK {
      t.Errorf("SafeInt(%v) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.wantOK)
    }
  }

  if got, ok := SafeInt(nil, 1); got != 1 || ok {
    t.Errorf("SafeInt(nil, 1) = (%d, %v), want fallback 1", got, ok)
  }
}

func TestSafePercentage(t *testing.T) {
  cases := []struct {
    in   any
    want float64
  }{
    {"85", 0.85},
    {"0.85", 0.85},
    {85, 0.85},
    {0.85, 0.85},
    {"100", 1.0},
    {"0", 0.0},
    // The boundary value 1 is ambiguous and read as a fraction (100%).
    {"1", 1.0},
  }
  for _, c := range cases {
    got := SafePercentage(c.in)
    if got == nil || *got != c.want {
      t.Errorf("SafePercentage(%v) = %v, want %v", c.in, got, c.want)
    }
  }

  if got := SafePercentage("n/a"); got != nil {
    t.Errorf("SafePercentage(n/a) = %v, want nil", *got)
  }
  if got := SafePercentage(""); got != nil {
    t.Errorf("SafePercentage(\"\") = %v, want nil", *got)
  }
}

func TestSafeDecimal(t *testing.T) {
  if d := SafeDecimal("150.50"); d == nil || d.String() != "150.5" {
    t.Errorf("SafeDecimal(150.50) = %v", d)
  }
  if d := SafeDecimal(100); d == nil || d.String() != "100" {
    t.Errorf("SafeDecimal(100) = %v", d)
  }
  if d := SafeDecimal("free"); d != nil {
    t.Errorf("SafeDecimal(free) = %v, want nil", d)
  }
  if d := SafeDecimal(nil); d != nil {
    t.Errorf("SafeDecimal(nil) = %v, want nil", d)
  }
}

func TestNormalizeKeysAliasesPlanID(t *testing.T) {
  row := NormalizeKeys(map[string]any{"Plan ID": "7", "Age-Min": "18"})
  if row["policy_id"] != "7" {
    t.Fatalf("plan_id alias not applied: %v", row)
  }
  if row["age_min"] != "18" {
    t.Fatalf("age_min not normalized: %v", row)
  }
}
