package graph

// --- Enums ---

// NodeKind classifies an injectable class by its decorator.
type NodeKind string

const (
	NodeKindService   NodeKind = "service"
	NodeKindComponent NodeKind = "component"
	NodeKindDirective NodeKind = "directive"
	NodeKindUnknown   NodeKind = "unknown"
)

// Direction controls sub-graph traversal relative to entry nodes.
type Direction string

const (
	DirectionDownstream Direction = "downstream" // dependencies of the entries
	DirectionUpstream   Direction = "upstream"   // dependents of the entries
	DirectionBoth       Direction = "both"       // union of both traversals
)

// --- Models ---

// Flags are the four qualifier modifiers that alter how a token is looked up
// in a hierarchical injector scope. Absence of the whole record means "no
// qualifier asserted", which is distinct from all-false.
type Flags struct {
	Optional bool `json:"optional,omitempty"`
	Self     bool `json:"self,omitempty"`
	SkipSelf bool `json:"skipSelf,omitempty"`
	Host     bool `json:"host,omitempty"`
}

// Or returns the field-wise logical OR of two flag records.
func (f Flags) Or(other Flags) Flags {
	return Flags{
		Optional: f.Optional || other.Optional,
		Self:     f.Self || other.Self,
		SkipSelf: f.SkipSelf || other.SkipSelf,
		Host:     f.Host || other.Host,
	}
}

// Zero reports whether no qualifier is asserted.
func (f Flags) Zero() bool {
	return !f.Optional && !f.Self && !f.SkipSelf && !f.Host
}

// Node is one injectable class discovered in the project. Identity is the
// class name; ids are unique within a Graph.
type Node struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"kind"`
}

// Edge records that the class From requests the token To in its constructor.
// To need not match any node id: tokens pointing at primitives, injection
// tokens, or third-party symbols stay as bare edges.
type Edge struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Flags      *Flags `json:"flags,omitempty"`
	IsCircular bool   `json:"isCircular,omitempty"`
}

// Graph is the assembled dependency graph. Node and edge order is discovery
// order and is significant: re-running the pipeline on unchanged input must
// produce byte-identical output.
type Graph struct {
	Nodes                []Node     `json:"nodes"`
	Edges                []Edge     `json:"edges"`
	CircularDependencies [][]string `json:"circularDependencies"`
}

// Stats summarizes a Graph.
type Stats struct {
	NodeCount  int `json:"nodeCount"`
	EdgeCount  int `json:"edgeCount"`
	CycleCount int `json:"cycleCount"`
}

// Stats computes summary counts for the graph.
func (g *Graph) Stats() Stats {
	return Stats{
		NodeCount:  len(g.Nodes),
		EdgeCount:  len(g.Edges),
		CycleCount: len(g.CircularDependencies),
	}
}

// --- Resolver input ---

// ParamFact carries the raw syntactic facts about one constructor parameter,
// as extracted by the source analyzer. The resolver turns it into a
// ResolvedDependency (or skips it with a warning).
type ParamFact struct {
	Name     string // parameter name
	TypeName string // static type reference; may be "any", "unknown", or empty

	// Legacy per-parameter decorators: @Inject(token) plus independent
	// qualifier decorators.
	InjectToken string
	LegacyFlags Flags

	// Modern functional form: a default-value inject(token, {...}) call.
	ModernToken string
	ModernFlags Flags
	HasModern   bool
}

// ClassFact carries the raw facts about one decorated class. Name may be
// empty for anonymous classes; the resolver rejects those.
type ClassFact struct {
	Name   string
	Kind   NodeKind
	File   string
	Line   int
	Params []ParamFact
}

// --- Resolver output / assembler input ---

// ResolvedDependency is one canonical dependency record.
type ResolvedDependency struct {
	Token         string `json:"token"`
	ParameterName string `json:"parameterName"`
	Flags         *Flags `json:"flags,omitempty"`
}

// ResolvedClass is one class with its resolved constructor dependencies.
type ResolvedClass struct {
	Name         string               `json:"name"`
	Kind         NodeKind             `json:"kind"`
	Dependencies []ResolvedDependency `json:"dependencies"`
}
