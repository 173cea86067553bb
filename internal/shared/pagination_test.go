package shared

import "testing"

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 45)
	if p.Page != 1 {
		t.Fatalf("expected page 1, got %d", p.Page)
	}
	if p.Limit != 20 {
		t.Fatalf("expected limit 20, got %d", p.Limit)
	}
	if p.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", p.TotalPages)
	}
	if p.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", p.Offset())
	}
}

func TestPaginationOffset(t *testing.T) {
	p := NewPagination(3, 10, 100)
	if p.Offset() != 20 {
		t.Fatalf("expected offset 20, got %d", p.Offset())
	}
	if p.TotalPages != 10 {
		t.Fatalf("expected 10 total pages, got %d", p.TotalPages)
	}
}
