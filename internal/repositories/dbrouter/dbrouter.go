// Package dbrouter decides which database instance serves an operation.
// The application's tables are partitioned across two MySQL deployments by
// the module that owns them; the policy here is the single source of truth
// for that placement.
package dbrouter

// Instance names one of the two relational store deployments.
type Instance string

const (
	Primary   Instance = "primary"
	Secondary Instance = "secondary"
)

func (i Instance) Known() bool {
	return i == Primary || i == Secondary
}

// AccessMode distinguishes reads from writes. The current policy routes
// both the same way, but callers state their intent so the decision point
// stays in one place.
type AccessMode int

const (
	Read AccessMode = iota
	Write
)

// Verdict is a tri-state answer for relation checks: Allow, or Abstain to
// defer to the store's default behavior. The policy never denies outright.
type Verdict int

const (
	Abstain Verdict = iota
	Allow
)

// Policy maps owning modules to instances. It is a stateless value: build
// it once at startup and pass it to the data-access layer.
type Policy struct {
	privileged map[string]struct{}
}

// NewPolicy routes the given modules to the secondary instance and every
// other module to the primary.
func NewPolicy(privilegedModules ...string) Policy {
	p := Policy{privileged: make(map[string]struct{}, len(privilegedModules))}
	for _, m := range privilegedModules {
		p.privileged[m] = struct{}{}
	}
	return p
}

// Default is the production policy: accounts and finance data live on the
// secondary instance.
func Default() Policy {
	return NewPolicy("accounts", "finance")
}

// InstanceFor returns the instance that serves the given module. Reads and
// writes route identically; every operation resolves to exactly one
// instance, so nothing ever spans both.
func (p Policy) InstanceFor(module string, _ AccessMode) Instance {
	if _, ok := p.privileged[module]; ok {
		return Secondary
	}
	return Primary
}

// AllowRelation reports whether two records resident on the given instances
// may be related. Both instances being known is sufficient; anything else
// is left to the store's default.
func (p Policy) AllowRelation(a, b Instance) Verdict {
	if a.Known() && b.Known() {
		return Allow
	}
	return Abstain
}

// AllowMigrate reports whether a table owned by module may be provisioned
// on target. A table belongs on exactly the instance its module routes to.
func (p Policy) AllowMigrate(target Instance, module string) bool {
	return target == p.InstanceFor(module, Write)
}
