// ABOUTME: Parsing helpers for optional numeric and list flags
// ABOUTME: An empty flag value means "leave unset"

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/pagination"
	"github.com/shopspring/decimal"
)

// listFlags are the paging flags shared by list commands
type listFlags struct {
	page  int
	limit int
}

func (f listFlags) params() pagination.Params {
	return pagination.Params{Page: f.page, Limit: f.limit}
}

func optDecimal(name, s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, usageError{fmt.Errorf("--%s must be a number, got %q", name, s)}
	}
	return &d, nil
}

func optInt(name, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, usageError{fmt.Errorf("--%s must be a whole number, got %q", name, s)}
	}
	return &n, nil
}

func idArg(args []string) api.ID {
	return api.ID(strings.TrimSpace(args[0]))
}
