package fitment

import (
	"reflect"
	"testing"
)

func TestDedupeProductIDs(t *testing.T) {
	// A product linked through two overlapping ranges shows up twice in the
	// raw link rows but must resolve to a single id.
	got := dedupeProductIDs([]string{"prod-1", "prod-2", "prod-1", "prod-3", "prod-2"})
	want := []string{"prod-1", "prod-2", "prod-3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupeProductIDs = %v, want %v", got, want)
	}
}

func TestDedupeProductIDsEmpty(t *testing.T) {
	got := dedupeProductIDs(nil)
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}

func TestDedupeProductIDsKeepsFirstSeenOrder(t *testing.T) {
	got := dedupeProductIDs([]string{"z", "a", "z", "m", "a"})
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupeProductIDs = %v, want %v", got, want)
	}
}
