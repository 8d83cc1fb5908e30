package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	apperrors "github.com/fiberarts/fiberfind/pkg/errors"
	"github.com/fiberarts/fiberfind/pkg/geocode"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
)

// parseID reports whether arg is a numeric Ravelry ID.
func parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// resolvePattern turns a CLI argument (numeric ID or name) into a full
// pattern. Name lookups prefer exact matches; several remaining candidates
// go through interactive selection.
func resolvePattern(ctx context.Context, client *ravelry.Client, arg string, maxPages int) (*ravelry.PatternDetail, error) {
	if id, ok := parseID(arg); ok {
		detail, err := client.GetPattern(ctx, id)
		if err != nil {
			return nil, wrapAPIError(err, apperrors.ErrCodePatternNotFound, "pattern %d", id)
		}
		return detail, nil
	}

	patterns, err := client.SearchPatterns(ctx, arg, maxPages)
	if err != nil {
		return nil, wrapAPIError(err, apperrors.ErrCodePatternNotFound, "pattern %q", arg)
	}
	patterns = preferExact(patterns, arg, func(p ravelry.Pattern) string { return p.Name })
	if len(patterns) == 0 {
		return nil, apperrors.New(apperrors.ErrCodePatternNotFound, "no pattern named %q", arg)
	}

	chosen := patterns[0]
	if len(patterns) > 1 {
		items := make([]pickItem, len(patterns))
		for i, p := range patterns {
			items[i] = pickItem{Label: p.Name, Detail: p.Designer}
		}
		idx, err := pickOne("Select Pattern", items)
		if err != nil {
			return nil, err
		}
		if idx < 0 {
			return nil, apperrors.New(apperrors.ErrCodePatternNotFound, "no pattern selected")
		}
		chosen = patterns[idx]
	}

	detail, err := client.GetPattern(ctx, chosen.ID)
	if err != nil {
		return nil, wrapAPIError(err, apperrors.ErrCodePatternNotFound, "pattern %d", chosen.ID)
	}
	return detail, nil
}

// resolveYarn is the yarn counterpart of resolvePattern.
func resolveYarn(ctx context.Context, client *ravelry.Client, arg string, maxPages int) (*ravelry.YarnDetail, error) {
	if id, ok := parseID(arg); ok {
		detail, err := client.GetYarn(ctx, id)
		if err != nil {
			return nil, wrapAPIError(err, apperrors.ErrCodeYarnNotFound, "yarn %d", id)
		}
		return detail, nil
	}

	yarns, err := client.SearchYarns(ctx, arg, maxPages)
	if err != nil {
		return nil, wrapAPIError(err, apperrors.ErrCodeYarnNotFound, "yarn %q", arg)
	}
	yarns = preferExact(yarns, arg, func(y ravelry.Yarn) string { return y.Name })
	if len(yarns) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeYarnNotFound, "no yarn named %q", arg)
	}

	chosen := yarns[0]
	if len(yarns) > 1 {
		items := make([]pickItem, len(yarns))
		for i, y := range yarns {
			items[i] = pickItem{Label: y.Name, Detail: y.Brand}
		}
		idx, err := pickOne("Select Yarn", items)
		if err != nil {
			return nil, err
		}
		if idx < 0 {
			return nil, apperrors.New(apperrors.ErrCodeYarnNotFound, "no yarn selected")
		}
		chosen = yarns[idx]
	}

	detail, err := client.GetYarn(ctx, chosen.ID)
	if err != nil {
		return nil, wrapAPIError(err, apperrors.ErrCodeYarnNotFound, "yarn %d", chosen.ID)
	}
	return detail, nil
}

// preferExact narrows search results to exact (case-insensitive) name
// matches when any exist.
func preferExact[T any](items []T, name string, key func(T) string) []T {
	var exact []T
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(key(item)), strings.TrimSpace(name)) {
			exact = append(exact, item)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return items
}

// wrapAPIError maps client sentinel errors onto structured codes so the
// CLI and the HTTP facade report them uniformly.
func wrapAPIError(err error, notFound apperrors.Code, format string, args ...any) error {
	switch {
	case errors.Is(err, ravelry.ErrNotFound):
		return apperrors.Wrap(notFound, err, format, args...)
	case errors.Is(err, ravelry.ErrUnauthorized):
		return apperrors.Wrap(apperrors.ErrCodeUnauthorized, err, format, args...)
	case errors.Is(err, geocode.ErrNoMatch):
		return apperrors.Wrap(apperrors.ErrCodeCityNotFound, err, format, args...)
	case errors.Is(err, ravelry.ErrNetwork), errors.Is(err, geocode.ErrBadResponse):
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, format, args...)
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, format, args...)
	}
}
