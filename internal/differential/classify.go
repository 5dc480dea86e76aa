package differential

import (
	"regexp"
	"strings"
)

// Terminal is the state a test run ended in, judged by its last line.
type Terminal int

const (
	Crash Terminal = iota
	AllPass
	FailureSummary
)

func (t Terminal) String() string {
	switch t {
	case AllPass:
		return "pass"
	case FailureSummary:
		return "fail"
	default:
		return "crash"
	}
}

// UnknownError is returned by ExtractDiagnostic when a failure block holds
// no recognizable message.
const UnknownError = "UnknownError"

// Classify inspects the package summary line that `go test` prints last.
// Anything but an ok line or a FAIL line for a package that built is a crash.
func Classify(output string) Terminal {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimRight(lines[i], " \t\r")
		if line == "" || line == "FAIL" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "ok ") || strings.HasPrefix(line, "ok\t"):
			return AllPass
		case strings.HasPrefix(line, "FAIL\t"):
			if strings.Contains(line, "[build failed]") || strings.Contains(line, "[setup failed]") {
				return Crash
			}
			return FailureSummary
		default:
			return Crash
		}
	}
	return Crash
}

var (
	traceMarkers = []string{"--- FAIL:", "panic:", "# "}
	separators   = []string{"--- ", "=== ", "FAIL", "PASS", "ok ", "ok\t", "goroutine ", "exit status"}
	formatting   = []string{"--- ", "=== ", "FAIL", "PASS", "ok ", "goroutine ", "exit status", "# "}
)

// ExtractDiagnostic finds the message of the first failure block in
// output: it scans to the first trace marker, forward to the next separator
// line, then back to the nearest line that reads like a message. The bool is
// false when output holds no failure block. It never panics.
func ExtractDiagnostic(output string) (diag string, found bool) {
	defer func() {
		if recover() != nil {
			diag, found = UnknownError, true
		}
	}()
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	start := -1
	for i, l := range lines {
		if hasAnyPrefix(l, traceMarkers) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if hasAnyPrefix(lines[i], separators) {
			end = i
			break
		}
	}
	for i := end - 1; i >= start; i-- {
		l := strings.TrimSpace(lines[i])
		if l == "" || !isLetter(l[0]) || hasAnyPrefix(l, formatting) {
			continue
		}
		return l, true
	}
	return UnknownError, true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

var (
	assertionLine = regexp.MustCompile(`^\S+_test\.go:\d+: `)
	learnerHint   = regexp.MustCompile(`@@(.+?)@@`)
)

// IsAssertion reports whether diag is a failure logged by the suite itself
// (t.Errorf and friends) rather than a panic or a build error.
func IsAssertion(diag string) bool {
	return assertionLine.MatchString(diag)
}

// LearnerHint returns the first @@hint@@ the learner's suite printed.
func LearnerHint(output string) (string, bool) {
	m := learnerHint.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}
