package candidate

import (
	"fmt"
	"testing"

	"github.com/moyu-x/duplicate-finder/internal"
)

func record(size uint64, path string) internal.FileRecord {
	return internal.FileRecord{Size: size, Name: path, FullPath: "/data/" + path}
}

func TestNewIndex(t *testing.T) {
	idx := NewIndex()
	if idx.BucketCount() != 0 {
		t.Errorf("Expected 0 buckets, got %d", idx.BucketCount())
	}
	if idx.CandidateCount() != 0 {
		t.Errorf("Expected 0 candidates, got %d", idx.CandidateCount())
	}
	if idx.MaxSize() != 0 {
		t.Errorf("Expected max size 0, got %d", idx.MaxSize())
	}
	if len(idx.Groups()) != 0 {
		t.Errorf("Expected no groups, got %d", len(idx.Groups()))
	}
}

func TestIndex_Add_SameSizeSameBucket(t *testing.T) {
	idx := NewIndex()
	idx.Add(record(10, "a"))
	idx.Add(record(10, "b"))
	idx.Add(record(20, "c"))

	if idx.BucketCount() != 2 {
		t.Fatalf("Expected 2 buckets, got %d", idx.BucketCount())
	}

	for _, g := range idx.Groups() {
		for _, f := range g.Files {
			if f.Size != g.Size {
				t.Errorf("File %s of size %d found in bucket %d", f.FullPath, f.Size, g.Size)
			}
		}
	}
}

func TestIndex_Add_DuplicatePath(t *testing.T) {
	idx := NewIndex()

	if !idx.Add(record(10, "a")) {
		t.Fatal("Add() should accept a new record")
	}
	if idx.Add(record(10, "a")) {
		t.Error("Add() should reject a record with the same size and path")
	}
	if !idx.Add(record(11, "a")) {
		t.Error("Add() should accept the same path with a different size")
	}

	if idx.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", idx.Len())
	}
	groups := idx.Groups()
	for _, g := range groups {
		if len(g.Files) != 1 {
			t.Errorf("Expected 1 file in bucket %d, got %d", g.Size, len(g.Files))
		}
	}
}

func TestIndex_Add_SameNameDifferentDirectory(t *testing.T) {
	idx := NewIndex()
	idx.Add(internal.FileRecord{Size: 5, Name: "x.txt", FullPath: "/one/x.txt"})
	idx.Add(internal.FileRecord{Size: 5, Name: "x.txt", FullPath: "/two/x.txt"})

	if idx.CandidateCount() != 2 {
		t.Errorf("Expected 2 candidates, got %d", idx.CandidateCount())
	}
}

func TestIndex_Groups_DescendingOrder(t *testing.T) {
	idx := NewIndex()
	for _, size := range []uint64{5, 500, 50, 0, 5000} {
		idx.Add(record(size, fmt.Sprintf("f%d", size)))
	}

	groups := idx.Groups()
	expected := []uint64{5000, 500, 50, 5, 0}
	if len(groups) != len(expected) {
		t.Fatalf("Expected %d groups, got %d", len(expected), len(groups))
	}
	for i, size := range expected {
		if groups[i].Size != size {
			t.Errorf("Group %d: expected size %d, got %d", i, size, groups[i].Size)
		}
	}
}

func TestIndex_Groups_PreservesInsertionOrder(t *testing.T) {
	idx := NewIndex()
	names := []string{"c", "a", "d", "b"}
	for _, name := range names {
		idx.Add(record(7, name))
	}

	groups := idx.Groups()
	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	for i, name := range names {
		if groups[0].Files[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, groups[0].Files[i].Name)
		}
	}
}

func TestIndex_CandidateCount(t *testing.T) {
	idx := NewIndex()
	idx.Add(record(1, "a"))
	idx.Add(record(2, "b"))
	idx.Add(record(2, "c"))
	idx.Add(record(3, "d"))
	idx.Add(record(3, "e"))
	idx.Add(record(3, "f"))

	if idx.CandidateCount() != 5 {
		t.Errorf("Expected 5 candidates, got %d", idx.CandidateCount())
	}
	if idx.BucketCount() != 3 {
		t.Errorf("Expected 3 buckets, got %d", idx.BucketCount())
	}
	if idx.MaxSize() != 3 {
		t.Errorf("Expected max size 3, got %d", idx.MaxSize())
	}
}

func TestIndex_Groups_ReturnsCopies(t *testing.T) {
	idx := NewIndex()
	idx.Add(record(4, "a"))
	idx.Add(record(4, "b"))

	groups := idx.Groups()
	groups[0].Files[0] = record(4, "mutated")

	again := idx.Groups()
	if again[0].Files[0].Name != "a" {
		t.Error("Groups() should not expose internal storage")
	}
}
