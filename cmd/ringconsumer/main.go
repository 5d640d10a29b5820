// Command ringconsumer is a consumer demo, grounded on
// original_source/user.c: it opens the shared segment, attaches a ring,
// waits on a futex notifier over the shared control block (the same wake
// word cmd/ringproducer signals), and drains records when woken,
// hexdumping packet payloads and logging drop summaries.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

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
			log.Fatalf("ringconsumer: loading config: %v", err)
		}
		cfg = loaded
	}

	seg, err := shmseg.OpenSegment(cfg.Segment.Name)
	if err != nil {
		log.Fatalf("ringconsumer: opening segment %q: %v", cfg.Segment.Name, err)
	}
	defer seg.Close()

	r, err := ring.Attach(seg.Mem)
	if err != nil {
		log.Fatalf("ringconsumer: attaching ring: %v", err)
	}
	consumer := ring.NewConsumer(r)

	notifier := ring.NewFutexNotifier(r.ControlBlock())
	defer notifier.Close()

	log.Printf("ringconsumer: attached to %q, size=%d", seg.Path, r.Size())

	done := make(chan struct{})
	var totalPackets, totalDrops uint64

	handle := func(hdr ring.RecordHeader, payload []byte) error {
		switch hdr.Type {
		case ring.RecordTypePKT:
			totalPackets++
			log.Printf("[pkt] ts=%d len=%d total=%d\n%s", hdr.TsNs, hdr.Len, totalPackets, hexdump(payload, 32))
		case ring.RecordTypeDROP:
			drop, err := ring.DecodeDropPayload(payload)
			if err != nil {
				return err
			}
			totalDrops += uint64(drop.Lost)
			log.Printf("** DROP ** lost=%d start=%d end=%d (total lost=%d)",
				drop.Lost, drop.StartNs, drop.EndNs, totalDrops)
		}
		return nil
	}

	if err := consumer.Run(done, notifier, r, handle); err != nil {
		log.Fatalf("ringconsumer: %v", err)
	}
}

// hexdump mirrors user.c's hexdump(): up to max bytes, 16 per line.
func hexdump(buf []byte, max int) string {
	n := len(buf)
	if n > max {
		n = max
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i != 0 && i%16 == 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%02x ", buf[i])
	}
	if n < len(buf) {
		b.WriteString("...")
	}
	return b.String()
}
