package model

// CostCatalog holds per-entity unit costs with a fallback default.
// A zero default means entities without an explicit cost contribute
// nothing to cost of goods sold.
type CostCatalog struct {
	PerEntity   map[string]float64
	DefaultCost float64
}

// NewCostCatalog returns an empty catalog.
func NewCostCatalog() *CostCatalog {
	return &CostCatalog{PerEntity: make(map[string]float64)}
}

// UnitCost returns the unit cost for an entity code, falling back to
// the catalog default. Safe on a nil catalog.
func (c *CostCatalog) UnitCost(code string) float64 {
	if c == nil {
		return 0
	}
	if cost, ok := c.PerEntity[code]; ok {
		return cost
	}
	return c.DefaultCost
}

// Empty reports whether the catalog carries no cost data at all.
func (c *CostCatalog) Empty() bool {
	return c == nil || (len(c.PerEntity) == 0 && c.DefaultCost == 0)
}
