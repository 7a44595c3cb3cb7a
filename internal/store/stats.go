package store

import (
	"context"

	"github.com/dekleptocracy/campaign-agent/internal/model"
)

// Summarize counts lines, distinct names and names recorded more than once.
func Summarize(names []string) model.MemoryStats {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}

	st := model.MemoryStats{Total: len(names), Unique: len(counts)}
	for n, c := range counts {
		if c > 1 {
			if st.Repeats == nil {
				st.Repeats = map[string]int{}
			}
			st.Repeats[n] = c
		}
	}
	return st
}

// Stats reads the whole store and summarizes it.
func Stats(ctx context.Context, s Store) (model.MemoryStats, error) {
	names, err := s.ReadAll(ctx)
	if err != nil {
		return model.MemoryStats{}, err
	}
	return Summarize(names), nil
}
