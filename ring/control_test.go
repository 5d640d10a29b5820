package ring

import "testing"

func TestSetWatermarksValidates(t *testing.T) {
	mem := testMem(64)
	r, err := New(mem, 64, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewProducer(r)

	if err := p.SetWatermarks(101, 0); err != ErrInvalidArgument {
		t.Fatalf("SetWatermarks(101, 0) = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetWatermarks(50, 80); err != ErrInvalidArgument {
		t.Fatalf("SetWatermarks(50, 80) = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetWatermarks(90, 20); err != nil {
		t.Fatalf("SetWatermarks(90, 20): %v", err)
	}
	cfg := p.GetConfig()
	if cfg.HiPct != 90 || cfg.LoPct != 20 {
		t.Fatalf("GetConfig() = %+v, want hi=90 lo=20", cfg)
	}
}

func TestAdvanceTailValidatesRange(t *testing.T) {
	mem := testMem(64)
	r, err := New(mem, 64, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewProducer(r)
	if err := p.Push([]byte("hi"), 1); err != nil {
		t.Fatalf("Push: %v", err)
	}
	head := r.cb().Head()

	if err := p.AdvanceTail(head + 1); err != ErrInvalidArgument {
		t.Fatalf("AdvanceTail(head+1) = %v, want ErrInvalidArgument", err)
	}
	if err := p.AdvanceTail(head); err != nil {
		t.Fatalf("AdvanceTail(head): %v", err)
	}
	if err := p.AdvanceTail(head - 1); err != ErrInvalidArgument {
		t.Fatalf("AdvanceTail moving backwards = %v, want ErrInvalidArgument", err)
	}
}

func TestBoundNotifierReportsNotBoundUntilBound(t *testing.T) {
	mem := testMem(64)
	r, err := New(mem, 64, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewProducer(r)

	if _, err := p.BoundNotifier(); err != ErrNotBound {
		t.Fatalf("BoundNotifier() before binding = %v, want ErrNotBound", err)
	}
	n := NewChanNotifier()
	p.BindNotifier(n)
	got, err := p.BoundNotifier()
	if err != nil || got != n {
		t.Fatalf("BoundNotifier() after binding = (%v, %v), want (n, nil)", got, err)
	}
}

func TestSetRateValidatesRange(t *testing.T) {
	mem := testMem(64)
	r, err := New(mem, 64, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewProducer(r)

	if err := p.SetRate(0); err != ErrInvalidArgument {
		t.Fatalf("SetRate(0) = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetRate(100001); err != ErrInvalidArgument {
		t.Fatalf("SetRate(100001) = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetRate(2000); err != nil {
		t.Fatalf("SetRate(2000): %v", err)
	}
	if got := p.Rate(); got != 2000 {
		t.Fatalf("Rate() = %d, want 2000", got)
	}
}
