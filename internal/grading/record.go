// Package grading turns the outcomes of a sequential test run into a weighted
// score and an ordered list of hints for the learner.
package grading

// GradeRecord is the outcome of one test in one run. Exactly one of success,
// failure with hint or error with hint holds.
type GradeRecord struct {
	TestName  string  `json:"test_name"`
	Weight    float64 `json:"weight"`
	Hint      string  `json:"hint,omitempty"`
	IsError   bool    `json:"is_error"`
	IsSuccess bool    `json:"is_success"`
}

// SuiteResult is the reduction of every GradeRecord of a run.
type SuiteResult struct {
	MaxWeight     float64
	AwardedWeight float64
	MaxPoints     float64
	Points        float64
	// Hints holds failure hints in test definition order, then error hints.
	Hints   []string
	Records []GradeRecord
}

func newSuiteResult(records []GradeRecord, maxPoints float64) (*SuiteResult, error) {
	res := &SuiteResult{MaxPoints: maxPoints, Records: records}
	var failureHints, errorHints []string
	for _, rec := range records {
		res.MaxWeight += rec.Weight
		switch {
		case rec.IsSuccess:
			res.AwardedWeight += rec.Weight
		case rec.IsError:
			errorHints = append(errorHints, rec.Hint)
		default:
			failureHints = append(failureHints, rec.Hint)
		}
	}
	if res.MaxWeight == 0 {
		return nil, ErrNoWeight
	}
	res.Points = maxPoints * (res.AwardedWeight / res.MaxWeight)
	res.Hints = append(failureHints, errorHints...)
	if res.Hints == nil {
		res.Hints = []string{}
	}
	return res, nil
}
