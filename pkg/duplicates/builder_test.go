package duplicates

import (
	"fmt"
	"testing"

	"github.com/moyu-x/duplicate-finder/internal"
)

func group(size uint64, members int) internal.DuplicateGroup {
	g := internal.DuplicateGroup{}
	for i := 0; i < members; i++ {
		g.Files = append(g.Files, internal.FileRecord{
			Size:     size,
			Name:     fmt.Sprintf("f%d", i),
			FullPath: fmt.Sprintf("/data/%d/f%d", size, i),
		})
	}
	return g
}

func TestBuilder_Empty(t *testing.T) {
	result := NewBuilder().Finalize()
	if len(result.DuplicateGroups) != 0 {
		t.Errorf("Expected no groups, got %d", len(result.DuplicateGroups))
	}
	if result.TotalReclaimableBytes != 0 {
		t.Errorf("Expected 0 reclaimable bytes, got %d", result.TotalReclaimableBytes)
	}
}

func TestBuilder_TwoDuplicates(t *testing.T) {
	b := NewBuilder()
	b.Add(group(100, 2))

	if got := b.Finalize().TotalReclaimableBytes; got != 100 {
		t.Errorf("Expected 100 reclaimable bytes, got %d", got)
	}
}

func TestBuilder_ThreeDuplicates(t *testing.T) {
	b := NewBuilder()
	b.Add(group(100, 3))

	if got := b.Finalize().TotalReclaimableBytes; got != 200 {
		t.Errorf("Expected 200 reclaimable bytes, got %d", got)
	}
}

func TestBuilder_SumAcrossGroups(t *testing.T) {
	b := NewBuilder()
	b.Add(group(1000, 2), group(100, 4))
	b.Add(group(10, 3))

	result := b.Finalize()
	var expected uint64
	for _, g := range result.DuplicateGroups {
		expected += g.Size() * uint64(len(g.Files)-1)
	}
	if result.TotalReclaimableBytes != expected || expected != 1000+300+20 {
		t.Errorf("Expected %d reclaimable bytes, got %d", expected, result.TotalReclaimableBytes)
	}
	if result.DuplicateFileCount() != 1+3+2 {
		t.Errorf("Expected 6 duplicate files, got %d", result.DuplicateFileCount())
	}
}

func TestBuilder_PreservesEmissionOrder(t *testing.T) {
	b := NewBuilder()
	sizes := []uint64{300, 200, 200, 100}
	for _, s := range sizes {
		b.Add(group(s, 2))
	}

	result := b.Finalize()
	if b.Len() != len(sizes) {
		t.Fatalf("Expected %d groups, got %d", len(sizes), b.Len())
	}
	for i, s := range sizes {
		if result.DuplicateGroups[i].Size() != s {
			t.Errorf("Group %d: expected size %d, got %d", i, s, result.DuplicateGroups[i].Size())
		}
	}
}

func TestBuilder_IgnoresSingletons(t *testing.T) {
	b := NewBuilder()
	b.Add(group(50, 1), group(50, 0))

	if b.Len() != 0 {
		t.Errorf("Expected singleton groups to be ignored, got %d", b.Len())
	}
}
