package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiregraph/wiregraph/internal/diag"
	"github.com/wiregraph/wiregraph/internal/graph"
)

const fixtureRoot = "testdata/ng_project"

func classNames(facts []graph.ClassFact) []string {
	out := make([]string, len(facts))
	for i, f := range facts {
		out[i] = f.Name
	}
	return out
}

func TestAnalyzeProject_Fixture(t *testing.T) {
	dc := diag.NewCollector()
	facts, err := NewAnalyzer().AnalyzeProject(context.Background(), fixtureRoot, nil, dc)
	require.NoError(t, err)

	// Lexicographic file order, source order within a file. node_modules is
	// excluded by default and the .d.ts declaration file is never parsed.
	want := []string{
		"GeneratedApiService",
		"AppComponent",
		"AuthService",
		"LoggerService",
		"MetricsService",
		"UserService",
		"HighlightDirective",
	}
	assert.Equal(t, want, classNames(facts))
	assert.Zero(t, dc.Count(), "clean fixture should produce no warnings")
}

func TestAnalyzeProject_CustomExcludes(t *testing.T) {
	dc := diag.NewCollector()
	facts, err := NewAnalyzer().AnalyzeProject(context.Background(), fixtureRoot, []string{"generated"}, dc)
	require.NoError(t, err)

	assert.NotContains(t, classNames(facts), "GeneratedApiService")
	assert.Contains(t, classNames(facts), "AuthService")
}

func TestAnalyzeProject_FactDetail(t *testing.T) {
	dc := diag.NewCollector()
	facts, err := NewAnalyzer().AnalyzeProject(context.Background(), fixtureRoot, nil, dc)
	require.NoError(t, err)

	var auth *graph.ClassFact
	for i := range facts {
		if facts[i].Name == "AuthService" {
			auth = &facts[i]
		}
	}
	require.NotNil(t, auth)

	assert.Equal(t, graph.NodeKindService, auth.Kind)
	assert.Equal(t, "src/app/auth.service.ts", auth.File)
	assert.Equal(t, 6, auth.Line)

	require.Len(t, auth.Params, 2)
	assert.Equal(t, "UserService", auth.Params[0].TypeName)
	assert.Equal(t, "SESSION_STORE", auth.Params[1].InjectToken)
	assert.Equal(t, graph.Flags{Optional: true}, auth.Params[1].LegacyFlags)
}

func TestAnalyzeProject_Deterministic(t *testing.T) {
	a := NewAnalyzer()
	first, err := a.AnalyzeProject(context.Background(), fixtureRoot, nil, diag.NewCollector())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := a.AnalyzeProject(context.Background(), fixtureRoot, nil, diag.NewCollector())
		require.NoError(t, err)
		assert.Equal(t, first, again, "parallel parsing must not reorder output")
	}
}

func TestAnalyzeProject_MissingRoot(t *testing.T) {
	_, err := NewAnalyzer().AnalyzeProject(context.Background(), "testdata/does-not-exist", nil, diag.NewCollector())
	require.Error(t, err)
}

func TestAnalyzeProject_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAnalyzer().AnalyzeProject(ctx, fixtureRoot, nil, diag.NewCollector())
	require.ErrorIs(t, err, context.Canceled)
}

func TestIsTypeScriptSource(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"src/app/auth.service.ts", true},
		{"src/app/widget.tsx", true},
		{"src/typings.d.ts", false},
		{"src/main.js", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isTypeScriptSource(tt.path), tt.path)
	}
}
