package domain

// DefaultTechPool is used for any category without a pool of its own.
var DefaultTechPool = []string{"JavaScript"}

// TechPools maps categories to their ordered technology names.
type TechPools map[Category][]string

// Lookup returns the pool for c, or fallback when c has no entry or an empty
// one. A nil fallback means DefaultTechPool. It never fails.
func (p TechPools) Lookup(c Category, fallback []string) []string {
	if pool := p[c]; len(pool) > 0 {
		return pool
	}
	if len(fallback) > 0 {
		return fallback
	}
	return DefaultTechPool
}
