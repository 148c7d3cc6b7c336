package texcache

// ledgerNode is a node in the eviction ledger's doubly-linked list.
// The node stores its id for O(1) deletion from the parent map.
type ledgerNode struct {
	id   string
	prev *ledgerNode
	next *ledgerNode
}

// ledger is the eviction order index: a doubly-linked list of resident
// texture ids ordered by (last access time, access sequence), least
// recently used first. Every access carries a strictly increasing
// sequence number, so the order is a strict total order even when two
// accesses land on the same clock tick — a touch always moves its entry
// behind every earlier one.
//
// Not thread-safe; the Manager serializes access.
type ledger struct {
	head *ledgerNode // least recently used
	tail *ledgerNode // most recently used
	len  int

	nodes map[string]*ledgerNode
}

func newLedger() *ledger {
	return &ledger{nodes: make(map[string]*ledgerNode)}
}

// Len returns the number of tracked ids.
func (l *ledger) Len() int {
	return l.len
}

// Touch records an access: an untracked id is appended as most recently
// used, a tracked one is moved to the most recently used position.
func (l *ledger) Touch(id string) {
	if node, ok := l.nodes[id]; ok {
		l.moveToBack(node)
		return
	}
	node := &ledgerNode{id: id}
	l.nodes[id] = node
	l.pushBack(node)
}

// Remove drops an id from the ledger. Unknown ids are ignored.
func (l *ledger) Remove(id string) {
	node, ok := l.nodes[id]
	if !ok {
		return
	}
	delete(l.nodes, id)
	l.unlink(node)
}

// Walk visits ids from least to most recently used until fn returns
// false. fn may remove the id it was called with.
func (l *ledger) Walk(fn func(id string) bool) {
	for node := l.head; node != nil; {
		next := node.next
		if !fn(node.id) {
			return
		}
		node = next
	}
}

func (l *ledger) pushBack(node *ledgerNode) {
	if l.tail == nil {
		l.head = node
		l.tail = node
	} else {
		node.prev = l.tail
		l.tail.next = node
		l.tail = node
	}
	l.len++
}

func (l *ledger) moveToBack(node *ledgerNode) {
	if node == l.tail {
		return
	}
	l.unlink(node)
	node.next = nil
	l.pushBack(node)
}

func (l *ledger) unlink(node *ledgerNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}
