package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/signalnine/autograde/internal/result"
)

type SubmissionSummary struct {
	Submission string   `json:"submission"`
	Points     float64  `json:"points"`
	Hints      []string `json:"hints"`
}

type Summary struct {
	Submissions []SubmissionSummary `json:"submissions"`
	Count       int                 `json:"count"`
	MeanPoints  float64             `json:"mean_points"`
	// FullMarks counts submissions that earned points without any hint.
	FullMarks int `json:"full_marks"`
}

// Generate reads every result file named name under root and writes a
// summary in the given format: table (default), markdown or json.
func Generate(root, name, format string, w io.Writer) error {
	results, err := result.Collect(root, name)
	if err != nil {
		return fmt.Errorf("collecting results: %w", err)
	}
	s := aggregate(results)

	switch format {
	case "markdown":
		return writeMarkdown(s, w)
	case "json":
		return writeJSON(s, w)
	default:
		return writeTable(s, w)
	}
}

func aggregate(results map[string]*result.Result) *Summary {
	s := &Summary{Submissions: []SubmissionSummary{}}
	var total float64
	for name, r := range results {
		s.Submissions = append(s.Submissions, SubmissionSummary{
			Submission: name,
			Points:     r.Points,
			Hints:      r.Hints,
		})
		total += r.Points
		if len(r.Hints) == 0 && r.Points > 0 {
			s.FullMarks++
		}
	}
	sort.Slice(s.Submissions, func(i, j int) bool {
		return s.Submissions[i].Submission < s.Submissions[j].Submission
	})
	s.Count = len(s.Submissions)
	if s.Count > 0 {
		s.MeanPoints = total / float64(s.Count)
	}
	return s
}

func firstHint(s SubmissionSummary) string {
	if len(s.Hints) == 0 {
		return "-"
	}
	h := s.Hints[0]
	if len(s.Hints) > 1 {
		h += fmt.Sprintf(" (+%d more)", len(s.Hints)-1)
	}
	return h
}

func writeTable(s *Summary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBMISSION\tPOINTS\tHINTS\tFIRST HINT")
	fmt.Fprintln(tw, strings.Repeat("-", 80))
	for _, sub := range s.Submissions {
		fmt.Fprintf(tw, "%s\t%.3f\t%d\t%s\n", sub.Submission, sub.Points, len(sub.Hints), firstHint(sub))
	}
	fmt.Fprintln(tw, strings.Repeat("-", 80))
	fmt.Fprintf(tw, "%d submissions\tmean %.3f\t%d full marks\t\n", s.Count, s.MeanPoints, s.FullMarks)
	return tw.Flush()
}

func writeMarkdown(s *Summary, w io.Writer) error {
	fmt.Fprintln(w, "| Submission | Points | Hints | First Hint |")
	fmt.Fprintln(w, "|---|---|---|---|")
	for _, sub := range s.Submissions {
		fmt.Fprintf(w, "| %s | %.3f | %d | %s |\n",
			sub.Submission, sub.Points, len(sub.Hints), strings.ReplaceAll(firstHint(sub), "|", `\|`))
	}
	fmt.Fprintf(w, "\n%d submissions, mean %.3f points, %d full marks\n", s.Count, s.MeanPoints, s.FullMarks)
	return nil
}

func writeJSON(s *Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
