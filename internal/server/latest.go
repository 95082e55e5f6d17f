package server

// latest is a single slot mailbox. Offering a value replaces any value that was not picked up yet, so a slow
// consumer only ever sees the newest input. It supports exactly one producer and one consumer.
type latest struct {
	ch chan string
}

func newLatest() *latest {
	return &latest{ch: make(chan string, 1)}
}

// offer stores v, dropping the pending value if there is one. It never blocks.
func (l *latest) offer(v string) {
	select {
	case l.ch <- v:
		return
	default:
	}
	select {
	case <-l.ch:
	default:
	}
	l.ch <- v
}

// done tells the consumer no more values will come. The pending value, if any, is still delivered.
func (l *latest) done() {
	close(l.ch)
}

// values is drained by the consumer until done is called.
func (l *latest) values() <-chan string {
	return l.ch
}
