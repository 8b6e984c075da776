package construct

import "strings"

// TechBase identifies which engineering tradition a component (or whole unit)
// belongs to. Mixed is only valid at the unit level; individual components are
// always either Inner Sphere or Clan.
type TechBase string

const (
	InnerSphere TechBase = "Inner Sphere"
	Clan        TechBase = "Clan"
	Mixed       TechBase = "Mixed"
)

// NormalizeTechBase maps the many spellings found in MTF files and catalog
// rows ("IS", "Inner Sphere", "Mixed (IS Chassis)", ...) onto a TechBase.
func NormalizeTechBase(s string) TechBase {
	lower := strings.ToLower(s)
	if strings.Contains(lower, "mixed") {
		return Mixed
	}
	if strings.Contains(lower, "clan") {
		return Clan
	}
	return InnerSphere
}

// Category is one of the eight fixed construction domains a unit is built
// from. Every category has its own legal component list per tech base and its
// own slot in the tech-base memory.
type Category string

const (
	CategoryStructure   Category = "structure"
	CategoryGyro        Category = "gyro"
	CategoryEngine      Category = "engine"
	CategoryHeatSink    Category = "heat_sink"
	CategoryTargeting   Category = "targeting"
	CategoryEnhancement Category = "enhancement"
	CategoryJumpJet     Category = "jump_jet"
	CategoryArmor       Category = "armor"
)

// Categories lists every construction category in a fixed order.
var Categories = []Category{
	CategoryStructure,
	CategoryGyro,
	CategoryEngine,
	CategoryHeatSink,
	CategoryTargeting,
	CategoryEnhancement,
	CategoryJumpJet,
	CategoryArmor,
}
