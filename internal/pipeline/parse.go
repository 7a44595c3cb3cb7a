package pipeline

import (
	"strings"

	"github.com/dekleptocracy/campaign-agent/internal/model"
)

// ParseCandidates keeps the trimmed lines of raw that contain the delimiter,
// in order. Everything else is dropped. The result is never nil.
func ParseCandidates(raw string) []string {
	out := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if strings.Contains(line, model.CandidateDelimiter) {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}
