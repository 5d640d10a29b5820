package ring

// The drop coalescer folds a burst of contiguous reservation failures into
// a single DROP record, per spec §4.5: IDLE on a successful reservation
// while not dropping; on a failed reservation it moves to IN-BURST; while
// IN-BURST, a successful reservation first emits a DROP record summarizing
// the burst, then returns to IDLE for the packet that follows.
//
// State lives in the shared ControlBlock (flags.DROPPING, drop_start_ns,
// lost_in_drop) so a consumer can observe it for diagnostics, but the
// producer owns it exclusively — see spec §9 "Cyclic/self-referential
// producer state". Grounded on original_source/myring.c's
// myring_on_full/myring_flush_drop_record.

// onReserveFail enters or extends the in-burst state.
func (c *ControlBlock) onReserveFail(nowNs uint64) {
	if !c.Dropping() {
		c.setDropping(true)
		c.setDropAccumulators(nowNs, 1)
		return
	}
	dropStart, lost := c.DropAccumulators()
	c.setDropAccumulators(dropStart, lost+1)
}

// clearBurst exits the in-burst state after a DROP record has been
// committed for it.
func (c *ControlBlock) clearBurst() {
	c.setDropping(false)
	c.setDropAccumulators(0, 0)
}
