package ingest

import (
  "strconv"
  "strings"

  "github.com/shopspring/decimal"
)

// NormalizeKey trims, lowercases and collapses spaces and hyphens to
// underscores so "Age Min", "age-min" and "age_min" all address one field.
// The legacy "plan_id" header is rewritten to "policy_id".
func NormalizeKey(key string) string {
  normalized := strings.ToLower(strings.TrimSpace(key))
  normalized = strings.ReplaceAll(normalized, " ", "_")
  normalized = strings.ReplaceAll(normalized, "-", "_")
  if normalized == "plan_id" {
    return "policy_id"
  }
  return normalized
}

// NormalizeKeys rewrites every column name of a raw row.
func NormalizeKeys(row map[string]any) map[string]any {
  normalized := make(map[string]any, len(row))
  for key, value := range row {
    normalized[NormalizeKey(key)] = value
  }
  return normalized
}

// SafeInt coerces a cell to an integer. It accepts native numbers and numeric
// strings, including Excel's float rendering of whole numbers ("30.0"). On
// failure it returns the fallback and false; it never errors.
func SafeInt(value any, fallback int) (int, bool) {
  switch v := value.(type) {
  case nil:
    return fallback, false
  case int:
    return v, true
  case int64:
    return int(v), true
  case float64:
    return int(v), true
  case string:
    s := strings.TrimSpace(v)
    if s == "" {
      return fallback, false
    }
    if n, err := strconv.Atoi(s); err == nil {
      return n, true
    }
    if f, err := strconv.ParseFloat(s, 64); err == nil {
      return int(f), true
    }
    return fallback, false
  default:
    return fallback, false
  }
}

// SafeFloat coerces a cell to a float, returning nil for anything unparsable.
func SafeFloat(value any) *float64 {
  switch v := value.(type) {
  case nil:
    return nil
  case int:
    f := float64(v)
    return &f
  case int64:
    f := float64(v)
    return &f
  case float64:
    f := v
    return &f
  case string:
    s := strings.TrimSpace(v)
    if s == "" {
      return nil
    }
    if f, err := strconv.ParseFloat(s, 64); err == nil {
      return &f
    }
    return nil
  default:
    return nil
  }
}

// SafePercentage normalizes an outpatient coverage cell to a fraction: values
// <= 1 pass through, larger values are read as whole percentages and divided
// by 100, so "85" and "0.85" both become 0.85. The boundary value 1 is
// ambiguous between 1% and 100% and is read as a fraction (100%).
func SafePercentage(value any) *float64 {
  f := SafeFloat(value)
  if f == nil {
    return nil
  }
  if *f <= 1 {
    return f
  }
  normalized := *f / 100
  return &normalized
}

// SafeDecimal coerces a price cell to a decimal, returning nil for anything
// unparsable. Strings go through decimal parsing directly so currency values
// keep their scale.
func SafeDecimal(value any) *decimal.Decimal {
  if s, ok := value.(string); ok {
    s = strings.TrimSpace(s)
    if s == "" {
      return nil
    }
    if d, err := decimal.NewFromString(s); err == nil {
      return &d
    }
    return nil
  }
  f := SafeFloat(value)
  if f == nil {
    return nil
  }
  d := decimal.NewFromFloat(*f)
  return &d
}

// CellString renders a cell as a trimmed string, with nil becoming "".
func CellString(value any) string {
  switch v := value.(type) {
  case nil:
    return ""
  case string:
    return strings.TrimSpace(v)
  case float64:
    return strings.TrimSpace(strconv.FormatFloat(v, 'f', -1, 64))
  case int:
    return strconv.Itoa(v)
  case int64:
    return strconv.FormatInt(v, 10)
  case bool:
    return strconv.FormatBool(v)
  default:
    return ""
  }
}
