package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/newsscrape-service/internal/entity"
)

var ErrUnknownSource = errors.New("unknown source")

// SelectSources returns the sources from all whose names appear in names,
// in the order of all. Matching ignores case. No names selects every source.
func SelectSources(all []entity.Source, names []string) ([]entity.Source, error) {
	if len(names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(strings.TrimSpace(n))] = false
	}

	var out []entity.Source
	for _, s := range all {
		key := strings.ToLower(s.Name)
		if _, ok := wanted[key]; ok {
			wanted[key] = true
			out = append(out, s)
		}
	}
	for _, n := range names {
		if !wanted[strings.ToLower(strings.TrimSpace(n))] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSource, n)
		}
	}
	return out, nil
}
