package ndf

// Descriptor classes the catalog sorts top-level nodes by.
const (
	TypeUnit          = "TEntityDescriptor"
	TypeAmmunition    = "TAmmunitionDescriptor"
	TypeSmoke         = "TSmokeDescriptor"
	TypeMissile       = "TMissileDescriptor"
	TypeWeaponManager = "TWeaponManagerModuleDescriptor"
)

// Index maps a descriptor identifier to its top-level node.
type Index map[string]*Node

// Lookup resolves id, tolerating a nil index.
func (ix Index) Lookup(id string) (*Node, bool) {
	if ix == nil {
		return nil, false
	}
	n, ok := ix[id]
	return n, ok
}

// Catalog holds the top-level descriptors of one or more parsed files,
// grouped by class. Units keep their source order.
type Catalog struct {
	Units          []*Node
	Ammo           Index
	Smoke          Index
	Missiles       Index
	WeaponManagers Index
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Ammo:           make(Index),
		Smoke:          make(Index),
		Missiles:       make(Index),
		WeaponManagers: make(Index),
	}
}

// Add classifies top-level nodes. A descriptor whose id was already seen
// replaces the earlier one; a replaced unit keeps its original position.
func (c *Catalog) Add(nodes ...*Node) {
	for _, n := range nodes {
		if n == nil || n.Name == "" {
			continue
		}
		switch n.Type {
		case TypeUnit:
			c.addUnit(n)
		case TypeAmmunition:
			c.Ammo[n.Name] = n
		case TypeSmoke:
			c.Smoke[n.Name] = n
		case TypeMissile:
			c.Missiles[n.Name] = n
		case TypeWeaponManager:
			c.WeaponManagers[n.Name] = n
		}
	}
}

func (c *Catalog) addUnit(n *Node) {
	for i, existing := range c.Units {
		if existing.Name == n.Name {
			c.Units[i] = n
			return
		}
	}
	c.Units = append(c.Units, n)
}

// Len returns the number of classified descriptors.
func (c *Catalog) Len() int {
	return len(c.Units) + len(c.Ammo) + len(c.Smoke) + len(c.Missiles) + len(c.WeaponManagers)
}
