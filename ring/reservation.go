package ring

// reservation is the result of a successful tryReserve: the caller writes
// n bytes starting at cursor, then must commit to publish them.
type reservation struct {
	r      *Ring
	cursor uint64
	n      uint64
}

// tryReserve attempts to reserve n bytes of the free window starting at the
// current head. It is wait-free and never blocks: on failure it returns
// ok=false and the caller is responsible for driving the drop coalescer.
//
// Per spec §4.4: n==0 is a caller bug (behavior unspecified — this
// implementation reserves a zero-length window, which is harmless but
// pointless); n>S is always rejected.
func (r *Ring) tryReserve(n uint64) (reservation, bool) {
	if n > r.size {
		return reservation{}, false
	}
	head := r.cb().Head()
	tail := r.cb().Tail() // acquire
	free := r.size - (head - tail)
	if free < n {
		return reservation{}, false
	}
	return reservation{r: r, cursor: head, n: n}, true
}

// commit writes the new head, releasing [cursor, cursor+n) to the consumer.
func (res reservation) commit() {
	res.r.cb().setHead(res.cursor + res.n)
}
