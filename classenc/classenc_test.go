package classenc

import "testing"

func TestNewTableSortsAscending(t *testing.T) {
	table := NewTable([]int64{5, 1, 5, -3, 100})

	want := []int64{-3, 1, 5, 100}
	decode := table.DecodeTable()
	if len(decode) != len(want) {
		t.Fatalf("expected %d distinct labels, got %d", len(want), len(decode))
	}
	for i, v := range want {
		if decode[i] != v {
			t.Errorf("decode[%d]: expected %d, got %d", i, v, decode[i])
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	labels := []int64{5, 1, 5, -3, 100}
	table := NewTable(labels)

	for _, label := range labels {
		code := table.Encode(label)
		if got := table.Decode(code); got != label {
			t.Errorf("round trip failed: encode(%d)=%d, decode=%d", label, code, got)
		}
	}
}

func TestEncodeUnknownLabelPanics(t *testing.T) {
	table := NewTable([]int64{1, 2, 3})
	defer func() {
		if recover() == nil {
			t.Error("expected panic encoding an unseen label")
		}
	}()
	table.Encode(42)
}

func TestNumClasses(t *testing.T) {
	table := NewTable([]int64{1, 1, 2, 3, 3, 3})
	if table.NumClasses() != 3 {
		t.Error("expected 3 classes, got:", table.NumClasses())
	}
}

func TestFromDecodeTableRejectsUnsorted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on non-ascending decode table")
		}
	}()
	FromDecodeTable([]int64{3, 1, 2})
}

func TestFromDecodeTableRoundTrip(t *testing.T) {
	table := FromDecodeTable([]int64{-1, 0, 7})
	if table.Decode(table.Encode(7)) != 7 {
		t.Error("expected round trip through a rebuilt table to hold")
	}
}
