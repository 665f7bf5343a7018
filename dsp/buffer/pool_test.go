package buffer

import "testing"

func TestPoolGetReturnsZeroed(t *testing.T) {
	p := NewPool()

	b, err := p.Get(8)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	b.Samples()[0] = 42
	b.Samples()[7] = 43
	p.Put(b)

	// Reused or not, the buffer must come back zeroed.
	b2, err := p.Get(8)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	for i, v := range b2.Samples() {
		if v != 0 {
			t.Fatalf("reused Samples()[%d] = %v, want 0", i, v)
		}
	}
	p.Put(b2)
}

func TestPoolGetTooLarge(t *testing.T) {
	if _, err := NewPool().Get(MaxLen + 1); err == nil {
		t.Fatal("expected error for oversized request")
	}
}

func TestPoolPutNilSafe(_ *testing.T) {
	p := NewPool()
	p.Put(nil) // must not panic
}
