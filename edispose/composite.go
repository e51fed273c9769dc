package edispose

import "sync"

// Key addresses a single child of a [Composite].
// The zero Key never refers to a live child.
type Key uint64

// Composite owns zero or more disposables
// and releases all of them when it is itself disposed.
//
// After Dispose, every Add disposes its argument immediately
// and returns the zero Key.
type Composite struct {
	mu sync.Mutex

	children map[Key]Disposable
	nextKey  Key

	disposed bool
}

// NewComposite returns an active Composite holding ds.
func NewComposite(ds ...Disposable) *Composite {
	c := &Composite{
		children: make(map[Key]Disposable, len(ds)),
	}
	for _, d := range ds {
		c.Add(d)
	}
	return c
}

// Add stores d in the container and returns the key to later [*Composite.Remove] it.
//
// If c is already disposed, d is disposed before Add returns
// and the returned key is the zero Key.
func (c *Composite) Add(d Disposable) Key {
	if d == nil {
		return 0
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		d.Dispose()
		return 0
	}

	c.nextKey++
	k := c.nextKey
	c.children[k] = d
	c.mu.Unlock()

	return k
}

// Remove detaches and disposes the child addressed by k,
// leaving every other child untouched.
// Remove is a no-op if k was already removed or c is disposed.
func (c *Composite) Remove(k Key) {
	c.mu.Lock()
	d, ok := c.children[k]
	if ok {
		delete(c.children, k)
	}
	c.mu.Unlock()

	if ok {
		d.Dispose()
	}
}

// Dispose disposes every child currently held, in no particular order,
// and marks c permanently disposed.
func (c *Composite) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	children := c.children
	c.children = nil
	c.mu.Unlock()

	for _, d := range children {
		d.Dispose()
	}
}

// Disposed reports whether Dispose has been called.
func (c *Composite) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Len reports the number of children currently held.
func (c *Composite) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.children)
}
