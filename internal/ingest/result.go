package ingest

import (
  "fmt"
  "sort"
  "strings"
)

const (
  // BatchSize bounds transaction size and SQL parameter count per commit.
  BatchSize = 100
  // maxDetailedErrors caps the per-row error list in the response; the rest
  // collapse into the grouped summary.
  maxDetailedErrors = 100
  maxSummaryGroups  = 10
)

// UploadResult is the structured outcome of one bulk upload. Row-level
// failures land in Errors; the upload as a whole still succeeds.
type UploadResult struct {
  Message          string   `json:"message"`
  RecordsProcessed int      `json:"records_processed"`
  RecordsCreated   int      `json:"records_created"`
  RecordsUpdated   int      `json:"records_updated"`
  Errors           []string `json:"errors"`
}

// finalize caps the detailed error list and appends a grouped frequency
// summary to the message so a large bad file stays diagnosable without
// flooding the response.
func (r *UploadResult) finalize(errs []string) {
  r.Message = "Upload completed"

  limited := errs
  if len(errs) > maxDetailedErrors {
    limited = make([]string, 0, maxDetailedErrors+1)
    limited = append(limited, errs[:maxDetailedErrors]...)
    limited = append(limited, fmt.Sprintf("... and %d more errors (see summary below)", len(errs)-maxDetailedErrors))
  }
  r.Errors = limited

  summary := summarizeErrors(errs)
  if len(summary) > 0 {
    lines := []string{"Error Summary:"}
    lines = append(lines, summary...)
    r.Message += "\n\n" + strings.Join(lines, "\n")
  }
}

// summarizeErrors groups messages by their text after the row prefix and
// returns the most frequent groups, ordered by count with first appearance
// breaking ties.
func summarizeErrors(errs []string) []string {
  counts := make(map[string]int)
  var order []string
  for _, e := range errs {
    key := e
    if _, rest, found := strings.Cut(e, ": "); found {
      key = rest
    }
    if counts[key] == 0 {
      order = append(order, key)
    }
    counts[key]++
  }
  sort.SliceStable(order, func(i, j int) bool {
    return counts[order[i]] > counts[order[j]]
  })
  if len(order) > maxSummaryGroups {
    order = order[:maxSummaryGroups]
  }
  lines := make([]string, 0, len(order))
  for _, key := range order {
    lines = append(lines, fmt.Sprintf("  - %s: %d occurrences", key, counts[key]))
  }
  return lines
}
