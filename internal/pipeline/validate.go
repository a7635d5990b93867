package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"partsimport/internal"
)

var ErrInvariant = errors.New("record invariant violated")

// ValidateRecord checks the option/variant matrix is self-consistent: every
// variant's values are declared options, every declared value is carried by
// a variant, and no (colour, size) pair repeats.
func ValidateRecord(rec internal.ProductRecord) error {
	if strings.TrimSpace(rec.Title) == "" {
		return invariant("empty title")
	}
	if len(rec.Options) == 0 || len(rec.Options) > 2 {
		return invariant("want 1 or 2 options, got %d", len(rec.Options))
	}
	if len(rec.Variants) == 0 {
		return invariant("no variants")
	}
	if rec.Count != len(rec.Variants) {
		return invariant("count %d != %d variants", rec.Count, len(rec.Variants))
	}

	declared := make([]map[string]bool, len(rec.Options))
	for i, opt := range rec.Options {
		if len(opt.Values) == 0 {
			return invariant("option %s has no values", opt.Name)
		}
		declared[i] = map[string]bool{}
		for _, v := range opt.Values {
			declared[i][v] = false
		}
	}

	seen := map[[2]string]struct{}{}
	for i, v := range rec.Variants {
		values := []string{v.Option1}
		if v.Option2 != nil {
			values = append(values, *v.Option2)
		}
		if len(values) != len(rec.Options) {
			return invariant("variant %d has %d values for %d options", i, len(values), len(rec.Options))
		}
		key := [2]string{}
		for j, value := range values {
			if _, ok := declared[j][value]; !ok {
				return invariant("variant %d: %q not a %s value", i, value, rec.Options[j].Name)
			}
			declared[j][value] = true
			key[j] = value
		}
		if _, dup := seen[key]; dup {
			return invariant("duplicate variant %q/%q", key[0], key[1])
		}
		seen[key] = struct{}{}
		if v.Price != nil && !strings.HasSuffix(*v.Price, ".99") {
			return invariant("variant %d price %s", i, *v.Price)
		}
	}

	for j, values := range declared {
		for value, used := range values {
			if !used {
				return invariant("%s value %q has no variant", rec.Options[j].Name, value)
			}
		}
	}
	return nil
}

func invariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
