package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/services"
)

const dateLayout = "2006-01-02"

func parseID(name, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s id %q", name, raw)
	}
	return uint(id), nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}

func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalID(v uint) *uint {
	if v == 0 {
		return nil
	}
	return &v
}

func parseStatus(raw string) (billing.Status, error) {
	st, ok := billing.ParseStatus(strings.ToLower(raw))
	if !ok {
		return 0, fmt.Errorf("unknown status %q", raw)
	}
	return st, nil
}

// parseLine reads "description;quantity;price[;tax[;discount]]".
func parseLine(raw string) (services.LineInput, error) {
	parts := strings.Split(raw, ";")
	if len(parts) < 3 || len(parts) > 5 {
		return services.LineInput{}, fmt.Errorf("invalid line %q, want description;quantity;price[;tax[;discount]]", raw)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	in := services.LineInput{Description: parts[0], Quantity: parts[1], Price: parts[2]}
	if len(parts) > 3 {
		in.Tax = parts[3]
	}
	if len(parts) > 4 {
		in.Discount = parts[4]
	}
	return in, nil
}
