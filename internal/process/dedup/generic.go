package dedup

import (
	"github.com/rs/zerolog"
)

// Log key constants for deduplication.
const (
	logKeyDuplicateKey = "duplicate_key"
	logKeyDropped      = "dropped"
)

// Deduplicate keeps the first element per key and drops the rest.
// Elements whose key is empty are dropped as well. The input is not modified.
func Deduplicate[T any](in []T, key func(T) string) []T {
	return DeduplicateFull(in, key, nil).Items
}

// DeduplicateResult contains the result of deduplication with metadata.
type DeduplicateResult[T any] struct {
	// Items contains the deduplicated elements in input order.
	Items []T

	// DroppedCount is the number of elements removed as duplicates or for an empty key.
	DroppedCount int
}

// DeduplicateFull performs deduplication and reports how many elements were dropped.
// A nil logger disables per-element debug logging.
func DeduplicateFull[T any](in []T, key func(T) string, logger *zerolog.Logger) DeduplicateResult[T] {
	result := DeduplicateResult[T]{
		Items: make([]T, 0, len(in)),
	}

	seen := make(map[string]struct{}, len(in))

	for _, el := range in {
		k := key(el)
		if k == "" {
			result.DroppedCount++
			continue
		}

		if _, dup := seen[k]; dup {
			result.DroppedCount++

			if logger != nil {
				logger.Debug().Str(logKeyDuplicateKey, k).Msg("Skipping duplicate")
			}

			continue
		}

		seen[k] = struct{}{}

		result.Items = append(result.Items, el)
	}

	if logger != nil && result.DroppedCount > 0 {
		logger.Debug().Int(logKeyDropped, result.DroppedCount).Msg("Deduplication complete")
	}

	return result
}
