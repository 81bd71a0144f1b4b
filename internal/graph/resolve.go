package graph

import (
	"fmt"

	"github.com/wiregraph/wiregraph/internal/diag"
)

// ResolveClasses resolves an ordered sequence of class facts into resolved
// classes, preserving order. Classes the resolver rejects (anonymous ones)
// are skipped with a warning; the rest of the sequence is unaffected.
func ResolveClasses(facts []ClassFact, dc *diag.Collector) []ResolvedClass {
	out := make([]ResolvedClass, 0, len(facts))
	for _, fact := range facts {
		if rc, ok := ResolveClass(fact, dc); ok {
			out = append(out, rc)
		}
	}
	return out
}

// ResolveClass resolves a single class fact. It returns ok=false for classes
// without a stable identifier; those are skipped entirely, before any
// parameter is considered.
func ResolveClass(fact ClassFact, dc *diag.Collector) (ResolvedClass, bool) {
	if fact.Name == "" {
		dc.Add(diag.Warning{
			Category:   diag.CategoryAnonymousClass,
			Message:    "anonymous class cannot participate in the dependency graph",
			File:       fact.File,
			Line:       fact.Line,
			Suggestion: "give the class a name",
		})
		return ResolvedClass{}, false
	}

	rc := ResolvedClass{
		Name:         fact.Name,
		Kind:         fact.Kind,
		Dependencies: make([]ResolvedDependency, 0, len(fact.Params)),
	}
	for _, p := range fact.Params {
		if dep, ok := resolveParam(fact, p, dc); ok {
			rc.Dependencies = append(rc.Dependencies, dep)
		}
	}
	return rc, true
}

// resolveParam applies the token precedence ladder to one parameter. The
// rules are evaluated top to bottom; the first that yields a token wins:
//
//  1. legacy @Inject(token) decorator
//  2. modern inject(token, opts) default-value call
//  3. the parameter's static type name
//
// A static type of "any" or "unknown" (or a missing type) without an explicit
// token produces no dependency: the parameter is skipped with a warning.
func resolveParam(cls ClassFact, p ParamFact, dc *diag.Collector) (ResolvedDependency, bool) {
	token := p.InjectToken
	if token == "" {
		token = p.ModernToken
	}
	if token == "" {
		if !typeResolvable(p.TypeName) {
			dc.Add(diag.Warning{
				Category: diag.CategoryTypeResolution,
				Message: fmt.Sprintf("cannot resolve injection token for parameter %q of %s (type %q)",
					p.Name, cls.Name, p.TypeName),
				File:       cls.File,
				Line:       cls.Line,
				Suggestion: "add an explicit injection token or a concrete type annotation",
			})
			return ResolvedDependency{}, false
		}
		token = p.TypeName
	}

	dep := ResolvedDependency{
		Token:         token,
		ParameterName: p.Name,
	}

	// Qualifiers merge across both annotation forms by field-wise OR: a flag
	// asserted by either form holds, and a conflict resolves to true.
	merged := p.LegacyFlags.Or(p.ModernFlags)
	if !merged.Zero() {
		f := merged
		dep.Flags = &f
	}
	return dep, true
}

// typeResolvable reports whether a static type name can serve as a token.
func typeResolvable(typeName string) bool {
	switch typeName {
	case "", "any", "unknown":
		return false
	}
	return true
}
