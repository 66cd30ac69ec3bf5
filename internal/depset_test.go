package internal

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepSetAddDeduplicatesByIdentity(t *testing.T) {
	d := newDepSet()
	l := &Link{id: NewId()}

	d.add(l)
	d.add(l)

	assert.Len(t, d.order, 1)
	assert.Len(t, d.live(), 1)
}

func TestDepSetLivePreservesInsertionOrder(t *testing.T) {
	d := newDepSet()
	links := make([]*Link, 5)
	for i := range links {
		links[i] = &Link{id: NewId()}
		d.add(links[i])
	}

	live := d.live()
	assert.Len(t, live, 5)
	for i, l := range live {
		assert.Same(t, links[i], l)
	}
	runtime.KeepAlive(links)
}

func TestDepSetLiveDropsStaleEntries(t *testing.T) {
	d := newDepSet()
	kept := &Link{id: NewId()}
	d.add(kept)

	func() {
		dropped := &Link{id: NewId()}
		d.add(dropped)
	}()

	runtime.GC()
	runtime.GC()

	live := d.live()
	assert.Contains(t, live, kept)
	assert.LessOrEqual(t, len(live), 2)
}
