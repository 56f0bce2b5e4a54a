package fixture

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestFetchDatasetReturnsDeterministicRows(t *testing.T) {
	p := New()

	first, err := p.FetchDataset(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, _ := p.FetchDataset(context.Background())

	if len(first) != len(sampleRows)+2 || len(first) != len(second) {
		t.Fatalf("unexpected dataset sizes %d and %d", len(first), len(second))
	}
	if *first[0].FirstName != "LeBron" || *first[0].Season != 2023 {
		t.Fatalf("unexpected first row %+v", first[0])
	}
}

func TestFetchDatasetReturnsCopy(t *testing.T) {
	p := New()
	ds, _ := p.FetchDataset(context.Background())
	ds[0].FirstName = nil

	again, _ := p.FetchDataset(context.Background())
	if again[0].FirstName == nil {
		t.Fatal("expected fixture rows to be unaffected by caller mutation")
	}
}

func TestSampleIncludesMissingData(t *testing.T) {
	ds := Sample()

	var nanHeights, noTeam int
	for _, r := range ds {
		if r.Height != nil && math.IsNaN(*r.Height) {
			nanHeights++
		}
		if r.Team == nil {
			noTeam++
		}
	}
	if nanHeights != 1 || noTeam != 1 {
		t.Fatalf("expected one NaN height and one missing team, got %d and %d", nanHeights, noTeam)
	}
}

func TestAdjustStripsDiacritics(t *testing.T) {
	if got := adjust("Jokić"); got != "Jokic" {
		t.Fatalf("expected Jokic, got %s", got)
	}
	if got := adjust("Dončić"); got != "Doncic" {
		t.Fatalf("expected Doncic, got %s", got)
	}
}

func TestFetchDatasetCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewWithDataset(nil).FetchDataset(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}
