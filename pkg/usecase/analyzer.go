package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/prscout/pkg/domain/model"
)

const (
	// MaxLineLength is the longest added line accepted without a suggestion
	MaxLineLength = 120

	feedbackPrint      = "Avoid using print statements in production code. Consider using logging instead."
	feedbackLineLength = "Line exceeds 120 characters. Consider breaking it into multiple lines for better readability."
)

// lineRule flags a single added diff line
type lineRule struct {
	match    func(line string) bool
	feedback string
}

// Order matters: a line gets the feedback of the first rule it matches.
var lineRules = []lineRule{
	{
		match:    func(line string) bool { return strings.Contains(line, "print(") },
		feedback: feedbackPrint,
	},
	{
		match:    func(line string) bool { return utf8.RuneCountInString(line) > MaxLineLength },
		feedback: feedbackLineLength,
	},
}

// AnalyzeDiff scans added lines of a unified diff and returns review suggestions.
// File header lines ("+++ b/path") are not treated as added content.
func AnalyzeDiff(diff string) *model.AnalysisResult {
	suggestions := []model.Suggestion{}

	for _, line := range strings.Split(diff, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !isAddedLine(line) {
			continue
		}

		for _, rule := range lineRules {
			if rule.match(line) {
				suggestions = append(suggestions, model.Suggestion{
					Line:     line,
					Feedback: rule.feedback,
				})
				break
			}
		}
	}

	return &model.AnalysisResult{
		Summary: fmt.Sprintf("Found %d suggestions.", len(suggestions)),
		Details: suggestions,
	}
}

func isAddedLine(line string) bool {
	return strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++")
}
