package store

import (
	"context"
	"errors"
	"fmt"
)

// Import appends names in order and returns how many were written. Blank
// names are skipped rather than failing the whole batch.
func Import(ctx context.Context, s Store, names []string) (int, error) {
	imported := 0
	for _, n := range names {
		err := s.Append(ctx, n)
		if errors.Is(err, ErrEmptyName) {
			continue
		}
		if err != nil {
			return imported, fmt.Errorf("import %q: %w", n, err)
		}
		imported++
	}
	return imported, nil
}

// Copy replays every record of src into dst, preserving order and duplicates.
func Copy(ctx context.Context, dst, src Store) (int, error) {
	names, err := src.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	return Import(ctx, dst, names)
}
