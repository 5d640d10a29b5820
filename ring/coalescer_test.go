package ring

import "testing"

func TestCoalescerEntersAndExtendsBurst(t *testing.T) {
	cb := &ControlBlock{}
	cb.setSize(64)

	if cb.Dropping() {
		t.Fatalf("fresh control block should not start in the dropping state")
	}

	cb.onReserveFail(100)
	if !cb.Dropping() {
		t.Fatalf("onReserveFail should enter the dropping state")
	}
	start, lost := cb.DropAccumulators()
	if start != 100 || lost != 1 {
		t.Fatalf("DropAccumulators() = (%d, %d), want (100, 1)", start, lost)
	}

	cb.onReserveFail(150)
	start, lost = cb.DropAccumulators()
	if start != 100 || lost != 2 {
		t.Fatalf("DropAccumulators() after a second failure = (%d, %d), want (100, 2)", start, lost)
	}
}

func TestCoalescerClearBurstResetsAccumulators(t *testing.T) {
	cb := &ControlBlock{}
	cb.setSize(64)
	cb.onReserveFail(1)
	cb.onReserveFail(2)
	cb.clearBurst()

	if cb.Dropping() {
		t.Fatalf("clearBurst should leave the dropping state")
	}
	start, lost := cb.DropAccumulators()
	if start != 0 || lost != 0 {
		t.Fatalf("DropAccumulators() after clearBurst = (%d, %d), want (0, 0)", start, lost)
	}
}
