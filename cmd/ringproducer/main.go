// Command ringproducer is a synthetic producer demo, grounded on
// original_source/myring.c's myring_prod_fn: it creates (or re-creates)
// the shared segment, pushes a monotonic-pattern packet at a configurable
// cadence, and logs changes in the drop count as they happen.
package main

import (
	"encoding/binary"
	"flag"
	"log"
	"time"

	"shmring/internal/config"
	"shmring/internal/shmseg"
	"shmring/ring"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional; defaults apply without one)")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("ringproducer: loading config: %v", err)
		}
		cfg = loaded
	}

	shmseg.RemoveSegment(cfg.Segment.Name) // best effort: clear a stale segment from a prior run

	seg, err := shmseg.CreateSegment(cfg.Segment.Name, ring.ControlPageSize+cfg.Ring.SizeBytes)
	if err != nil {
		log.Fatalf("ringproducer: creating segment %q: %v", cfg.Segment.Name, err)
	}
	defer seg.Close()

	r, err := ring.New(seg.Mem, cfg.Ring.SizeBytes, cfg.Ring.HiPct, cfg.Ring.LoPct)
	if err != nil {
		log.Fatalf("ringproducer: initializing ring: %v", err)
	}

	producer := ring.NewProducer(r)
	notifier := ring.NewFutexNotifier(r.ControlBlock())
	producer.BindNotifier(notifier)
	if err := producer.SetRate(cfg.Ring.RateHz); err != nil {
		log.Fatalf("ringproducer: setting rate: %v", err)
	}

	log.Printf("ringproducer: segment %q ready, size=%d hi=%d%% lo=%d%% rate=%dHz",
		seg.Path, cfg.Ring.SizeBytes, cfg.Ring.HiPct, cfg.Ring.LoPct, cfg.Ring.RateHz)

	interval := intervalFor(producer.Rate())
	var seq uint64
	var lastDrops uint64
	for {
		seq++
		push(producer, seq)

		if stats := producer.GetStats(); stats.Drops != lastDrops {
			log.Printf("ringproducer: drops now %d (was %d)", stats.Drops, lastDrops)
			lastDrops = stats.Drops
		}

		time.Sleep(interval)
	}
}

// intervalFor mirrors myring_prod_fn's "rate_hz ? max(1, 1000/rate_hz) : 1"
// cadence rule, resolving the rate_hz==0 open question as "as fast as
// possible" — which here means the tightest interval this loop supports,
// 1ms, per SPEC_FULL.md §6.
func intervalFor(rateHz uint32) time.Duration {
	if rateHz == 0 {
		return time.Millisecond
	}
	ms := 1000 / rateHz
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// push writes a 256-byte packet following myring_prod_fn's pattern: an
// 8-byte timestamp, an 8-byte sequence number, then a sequence-derived
// fill pattern, so a consumer can sanity-check ordering and content
// without a shared oracle.
func push(p *ring.Producer, seq uint64) {
	var buf [256]byte
	nowNs := uint64(time.Now().UnixNano())
	binary.LittleEndian.PutUint64(buf[0:8], nowNs)
	binary.LittleEndian.PutUint64(buf[8:16], seq)
	for i := 16; i < len(buf); i++ {
		buf[i] = byte(seq + uint64(i))
	}
	if err := p.Push(buf[:], nowNs); err != nil {
		log.Printf("ringproducer: push: %v", err)
	}
}
