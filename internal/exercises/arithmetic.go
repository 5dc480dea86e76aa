package exercises

import (
	"fmt"

	"github.com/signalnine/autograde/internal/grading"
	"github.com/signalnine/autograde/internal/submission"
)

// Calculate implements a - b² / (c + d * (√a mod b)).
type Calculate = func(a, b, c, d float64) float64

func init() {
	Register(&Exercise{
		Name:        "arithmetic",
		Description: "Evaluate a - b² / (c + d * (√a mod b)) in Calculate.",
		Entry:       "task/script.go",
		Build:       buildArithmetic,
	})
}

var arithmeticCases = []struct {
	a, b, c, d float64
	want       float64
}{
	{1, 2, 3, 4, 0.428571},
	{2, 3, 4, 5, 1.187070},
	{3, 4, 5, 6, 1.960520},
	{4, 5, 6, 7, 2.75},
}

func buildArithmetic(sub *submission.Submission) []*grading.Suite {
	calc := submission.Func[Calculate](sub, "Calculate")

	results := grading.NewSuite("Arithmetic")
	for i, tc := range arithmeticCases {
		results.AddWeighted(fmt.Sprintf("Case%d", i+1), 0.25, func(t *grading.T) {
			t.Hintf("Calculation not correct for a=%v, b=%v, c=%v, d=%v... expected result is %v!",
				tc.a, tc.b, tc.c, tc.d, tc.want)
			t.InDelta(tc.want, calc(tc.a, tc.b, tc.c, tc.d), 1e-5)
		})
	}

	structure := grading.NewSuite("Structure").
		Add("NotTemplate", func(t *grading.T) {
			t.RejectTemplate(sub.Source, "Calculate", 20,
				"Calculate still looks like the template; replace the panic with the formula.")
		})
	return []*grading.Suite{results, structure}
}
