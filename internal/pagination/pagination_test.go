// ABOUTME: Tests for pagination metadata helpers
// ABOUTME: Verifies page count math, clamping, and boundaries

package pagination

import (
	"net/url"
	"testing"
)

func TestPagesFor(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{45, 0, 0},
	}
	for _, tc := range tests {
		if got := PagesFor(tc.total, tc.limit); got != tc.want {
			t.Errorf("PagesFor(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Meta
		want Meta
	}{
		{"computes pages", Meta{Page: 1, Limit: 20, Total: 45}, Meta{Page: 1, Limit: 20, Total: 45, Pages: 3}},
		{"clamps high page", Meta{Page: 9, Limit: 20, Total: 45, Pages: 3}, Meta{Page: 3, Limit: 20, Total: 45, Pages: 3}},
		{"clamps low page", Meta{Page: 0, Limit: 20, Total: 45, Pages: 3}, Meta{Page: 1, Limit: 20, Total: 45, Pages: 3}},
		{"empty collection", Meta{Page: 1, Limit: 20}, Meta{Page: 1, Limit: 20}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); got != tc.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestBoundaries(t *testing.T) {
	m := Meta{Page: 1, Pages: 3}
	if m.HasPrev() {
		t.Error("page 1 must not have a previous page")
	}
	if !m.HasNext() {
		t.Error("page 1 of 3 must have a next page")
	}

	m.Page = 3
	if m.HasNext() {
		t.Error("last page must not have a next page")
	}
	if !m.InRange(2) || m.InRange(0) || m.InRange(4) {
		t.Error("InRange boundaries wrong")
	}
	if m.Next() != 3 || m.Prev() != 2 {
		t.Errorf("at last page: Prev=%d Next=%d", m.Prev(), m.Next())
	}

	m.Page = 1
	if m.Prev() != 1 || m.Next() != 2 {
		t.Errorf("at first page: Prev=%d Next=%d", m.Prev(), m.Next())
	}
}

func TestParamsApply(t *testing.T) {
	q := url.Values{}
	Params{Page: 2, Limit: 20}.Apply(q)
	if q.Get("page") != "2" || q.Get("limit") != "20" {
		t.Errorf("unexpected query: %s", q.Encode())
	}

	q = url.Values{}
	Params{}.Apply(q)
	if len(q) != 0 {
		t.Errorf("expected no params for zero values, got %s", q.Encode())
	}
}
