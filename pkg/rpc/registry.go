package rpc

import (
	"fmt"

	"github.com/aussiebroadwan/rpcbridge/pkg/rpc/schema"
)

// Registry accumulates the endpoint definitions of one namespace. Endpoints
// are appended via Add at startup; afterwards the registry is read-only for
// both the dispatcher and the client generator.
type Registry struct {
	namespace string
	endpoints []Endpoint
}

// NewRegistry creates an empty registry for the given namespace.
func NewRegistry(namespace string) *Registry {
	if namespace == "" {
		panic("rpc: registry namespace must not be empty")
	}
	if !identFragment(namespace) {
		panic(fmt.Sprintf("rpc: namespace %q is not usable in generated identifiers", namespace))
	}
	return &Registry{namespace: namespace}
}

// Add appends an endpoint definition and returns the registry for chaining.
// A duplicate (name, version) pair is a programmer error and panics at
// registration time rather than surfacing at request time.
func (r *Registry) Add(e Endpoint) *Registry {
	if e.Name == "" {
		panic(fmt.Sprintf("rpc: namespace %q: endpoint name must not be empty", r.namespace))
	}
	if !identFragment(e.Name) {
		panic(fmt.Sprintf("rpc: namespace %q: endpoint name %q is not usable in generated identifiers", r.namespace, e.Name))
	}
	if e.Version < 0 {
		panic(fmt.Sprintf("rpc: namespace %q: endpoint %q has negative version %d", r.namespace, e.Name, e.Version))
	}
	if e.Access == nil {
		panic(fmt.Sprintf("rpc: namespace %q: endpoint %q v%d has no access variant", r.namespace, e.Name, e.Version))
	}
	for _, existing := range r.endpoints {
		if existing.Name == e.Name && existing.Version == e.Version {
			panic(fmt.Sprintf("rpc: namespace %q: duplicate endpoint %q v%d", r.namespace, e.Name, e.Version))
		}
	}
	checkFieldNames(e.Body, fmt.Sprintf("rpc: namespace %q: endpoint %q v%d body", r.namespace, e.Name, e.Version))
	checkFieldNames(e.Resp, fmt.Sprintf("rpc: namespace %q: endpoint %q v%d response", r.namespace, e.Name, e.Version))

	r.endpoints = append(r.endpoints, e)
	return r
}

// identFragment reports whether s can be spliced into a generated Go
// identifier: ASCII letters and digits, starting with a letter.
func identFragment(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}

func checkFieldNames(s schema.Schema, where string) {
	switch s.Kind {
	case schema.KindObject:
		for _, f := range s.Fields {
			if !identFragment(f.Name) {
				panic(fmt.Sprintf("%s: field name %q is not usable in generated identifiers", where, f.Name))
			}
			checkFieldNames(f.Schema, where)
		}
	case schema.KindArray:
		checkFieldNames(*s.Elem, where)
	}
}

// Namespace returns the route prefix shared by all endpoints in the registry.
func (r *Registry) Namespace() string { return r.namespace }

// Endpoints returns the accumulated definitions in registration order.
// The returned slice is a copy; mutating it does not affect the registry.
func (r *Registry) Endpoints() []Endpoint {
	out := make([]Endpoint, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}
