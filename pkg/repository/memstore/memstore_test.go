package memstore

import (
	"context"
	"testing"

	"github.com/mki/isnad/internal/fixtures"
)

func TestFetchNarrators(t *testing.T) {
	s := New(fixtures.Narrators(), nil)
	got, err := s.FetchNarrators(context.Background(), []int{fixtures.Amash, fixtures.Missing, fixtures.Prophet})
	if err != nil {
		t.Fatalf("FetchNarrators: %v", err)
	}
	if len(got) != 2 || got[0].Index != fixtures.Amash || got[1].Index != fixtures.Prophet {
		t.Errorf("got %+v", got)
	}
	if s.Calls != 1 {
		t.Errorf("Calls = %d, want 1", s.Calls)
	}
}

func TestListHadithsOrder(t *testing.T) {
	s := New(nil, fixtures.Hadiths())

	tests := []struct {
		name    string
		offset  int
		limit   int
		source  string
		wantIDs []string
		total   int
	}{
		{"all", 0, 10, "", []string{fixtures.TwoChainID, fixtures.EmptyID, fixtures.PartialID, fixtures.SingleChainID}, 4},
		{"bukhari only", 0, 10, "bukhari", []string{fixtures.TwoChainID, fixtures.EmptyID, fixtures.PartialID}, 3},
		{"second page", 2, 2, "", []string{fixtures.PartialID, fixtures.SingleChainID}, 4},
		{"past end", 8, 2, "", nil, 4},
		{"unknown source", 0, 10, "tirmidhi", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs, total, err := s.ListHadiths(context.Background(), tt.offset, tt.limit, tt.source)
			if err != nil {
				t.Fatalf("ListHadiths: %v", err)
			}
			if total != tt.total {
				t.Errorf("total = %d, want %d", total, tt.total)
			}
			if len(hs) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(hs), len(tt.wantIDs))
			}
			for i, h := range hs {
				if h.ID != tt.wantIDs[i] {
					t.Errorf("item %d = %s, want %s", i, h.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestCancelledContext(t *testing.T) {
	s := New(fixtures.Narrators(), fixtures.Hadiths())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.FetchNarrators(ctx, []int{1}); err == nil {
		t.Error("FetchNarrators should fail on a cancelled context")
	}
	if _, err := s.FetchHadith(ctx, fixtures.TwoChainID); err == nil {
		t.Error("FetchHadith should fail on a cancelled context")
	}
}
