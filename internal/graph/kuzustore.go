//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself for new
// databases. This is what lets `diagram` and the MCP tools query a graph
// saved by an earlier `analyze` run.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema. Node tables
// must precede relationship tables. The seq columns preserve discovery order,
// which KuzuDB row order does not guarantee on its own. Dependency tokens
// that match no discovered class live in their own Token table because a
// relationship table requires both endpoints to exist.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Class(
		name STRING,
		kind STRING,
		seq INT64,
		PRIMARY KEY(name)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Token(
		name STRING,
		PRIMARY KEY(name)
	)`,
	`CREATE REL TABLE IF NOT EXISTS DEPENDS_ON(FROM Class TO Class,
		seq INT64,
		has_flags BOOLEAN,
		` + "`optional`" + ` BOOLEAN,
		self BOOLEAN,
		skip_self BOOLEAN,
		host BOOLEAN,
		is_circular BOOLEAN
	)`,
	`CREATE REL TABLE IF NOT EXISTS REQUESTS(FROM Class TO Token,
		seq INT64,
		has_flags BOOLEAN,
		` + "`optional`" + ` BOOLEAN,
		self BOOLEAN,
		skip_self BOOLEAN,
		host BOOLEAN,
		is_circular BOOLEAN
	)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write ----------

// SaveGraph writes all nodes and edges. Call on a freshly initialized store;
// callers replacing an existing index remove the database directory first.
func (s *KuzuStore) SaveGraph(ctx context.Context, g *Graph) error {
	classSet := make(map[string]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		classSet[n.ID] = true
		if err := s.exec(
			"CREATE (c:Class {name: $name, kind: $kind, seq: $seq})",
			map[string]any{"name": n.ID, "kind": string(n.Kind), "seq": int64(i)},
		); err != nil {
			return err
		}
	}

	// Dangling targets become Token nodes, created once each.
	tokenSeen := make(map[string]bool)
	for _, e := range g.Edges {
		if classSet[e.To] || tokenSeen[e.To] {
			continue
		}
		tokenSeen[e.To] = true
		if err := s.exec(
			"CREATE (t:Token {name: $name})",
			map[string]any{"name": e.To},
		); err != nil {
			return err
		}
	}

	for i, e := range g.Edges {
		cypher := `MATCH (a:Class {name: $src}), (b:Token {name: $dst})
			CREATE (a)-[:REQUESTS {seq: $seq, has_flags: $hf, ` + "`optional`" + `: $opt,
				self: $self, skip_self: $skip, host: $host, is_circular: $circ}]->(b)`
		if classSet[e.To] {
			cypher = `MATCH (a:Class {name: $src}), (b:Class {name: $dst})
				CREATE (a)-[:DEPENDS_ON {seq: $seq, has_flags: $hf, ` + "`optional`" + `: $opt,
					self: $self, skip_self: $skip, host: $host, is_circular: $circ}]->(b)`
		}

		var f Flags
		hasFlags := e.Flags != nil
		if hasFlags {
			f = *e.Flags
		}
		if err := s.exec(cypher, map[string]any{
			"src":  e.From,
			"dst":  e.To,
			"seq":  int64(i),
			"hf":   hasFlags,
			"opt":  f.Optional,
			"self": f.Self,
			"skip": f.SkipSelf,
			"host": f.Host,
			"circ": e.IsCircular,
		}); err != nil {
			return err
		}
	}

	return nil
}

// ---------- Read ----------

// LoadGraph reads the stored graph back in discovery order. Cycle sequences
// are recomputed from the reloaded edges; detection is deterministic for a
// fixed order, so the result matches what was saved.
func (s *KuzuStore) LoadGraph(_ context.Context) (*Graph, error) {
	g := &Graph{Nodes: []Node{}, Edges: []Edge{}, CircularDependencies: [][]string{}}

	rows, err := s.query("MATCH (c:Class) RETURN c.name, c.kind, c.seq", nil)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return toInt(rows[i][2]) < toInt(rows[j][2]) })
	for _, r := range rows {
		g.Nodes = append(g.Nodes, Node{ID: toString(r[0]), Kind: NodeKind(toString(r[1]))})
	}

	edgeQueries := []string{
		`MATCH (a:Class)-[r:DEPENDS_ON]->(b:Class)
		 RETURN a.name, b.name, r.seq, r.has_flags, r.` + "`optional`" + `, r.self, r.skip_self, r.host`,
		`MATCH (a:Class)-[r:REQUESTS]->(b:Token)
		 RETURN a.name, b.name, r.seq, r.has_flags, r.` + "`optional`" + `, r.self, r.skip_self, r.host`,
	}

	type seqEdge struct {
		seq  int
		edge Edge
	}
	var edges []seqEdge
	for _, q := range edgeQueries {
		rows, err := s.query(q, nil)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			e := Edge{From: toString(r[0]), To: toString(r[1])}
			if toBool(r[3]) {
				e.Flags = &Flags{
					Optional: toBool(r[4]),
					Self:     toBool(r[5]),
					SkipSelf: toBool(r[6]),
					Host:     toBool(r[7]),
				}
			}
			edges = append(edges, seqEdge{seq: toInt(r[2]), edge: e})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].seq < edges[j].seq })
	for _, se := range edges {
		g.Edges = append(g.Edges, se.edge)
	}

	DetectCycles(g)
	return g, nil
}

// Stats returns node, edge, and cycle counts for the stored graph.
func (s *KuzuStore) Stats(ctx context.Context) (*Stats, error) {
	g, err := s.LoadGraph(ctx)
	if err != nil {
		return nil, err
	}
	st := g.Stats()
	return &st, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).
// These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
