package eventgraph

// Group is a bulk-lifecycle container for links and cells created as one
// logical unit (SPEC_FULL.md's "Group" domain module), adapted from the
// teacher's owner/child-list pattern: rather than a hierarchy of
// Disposables with individual cleanup callbacks, Group tracks the plain
// strong references that keep a link alive, since links here need no
// explicit teardown — the scheduler holds only weak back-references to
// them, so a link stops activating once nothing strong points at it
// anymore and the garbage collector has reclaimed it (P8). Dropping a Group is therefore just forgetting those
// references at once instead of one at a time.
type Group struct {
	links []*Link
	cells []any
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{}
}

// TrackLink adds l to the group and returns it, so registration and
// tracking can be chained: g.TrackLink(Register(ctx, ins, out, cb)).
func (g *Group) TrackLink(l *Link) *Link {
	g.links = append(g.links, l)
	return l
}

// TrackCell adds a Cell or SeqCell to the group purely so the group holds
// a strong reference to it for as long as the group lives; cells never
// need disposal themselves, but a value that only a group's tracked links
// depend on should not outlive the group that owns those links.
func (g *Group) TrackCell(c any) {
	g.cells = append(g.cells, c)
}

// Drop releases every reference the group holds. Any link with no other
// strong holder becomes eligible for collection and drops out of future
// activations; any cell with no other strong holder likewise becomes
// eligible for collection once its remaining dependents are gone.
func (g *Group) Drop() {
	g.links = nil
	g.cells = nil
}
