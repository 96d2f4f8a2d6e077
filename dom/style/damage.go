package style

import "strings"

// RestyleDamage is a set of flags describing which parts of the layout
// need to be redone after a node's style changed.
type RestyleDamage uint8

// Restyle damage flags. The styling system sets them; box tree construction
// reads and clears them.
const (
	Repaint         RestyleDamage = 1 << iota // only painting is affected
	BubbleISizes                              // intrinsic inline sizes must be recomputed
	Reflow                                    // geometry must be recomputed
	ReconstructFlow                           // boxes must be rebuilt from scratch

	NoDamage   RestyleDamage = 0
	RebuildAll               = Repaint | BubbleISizes | Reflow | ReconstructFlow
)

// Contains is true if all flags of d2 are set in d.
func (d RestyleDamage) Contains(d2 RestyleDamage) bool {
	return d&d2 == d2
}

// Insert returns d with all flags of d2 set.
func (d RestyleDamage) Insert(d2 RestyleDamage) RestyleDamage {
	return d | d2
}

// Remove returns d with all flags of d2 cleared.
func (d RestyleDamage) Remove(d2 RestyleDamage) RestyleDamage {
	return d &^ d2
}

func (d RestyleDamage) String() string {
	if d == NoDamage {
		return "none"
	}
	var flags []string
	if d&Repaint != 0 {
		flags = append(flags, "repaint")
	}
	if d&BubbleISizes != 0 {
		flags = append(flags, "bubble-isizes")
	}
	if d&Reflow != 0 {
		flags = append(flags, "reflow")
	}
	if d&ReconstructFlow != 0 {
		flags = append(flags, "reconstruct")
	}
	return strings.Join(flags, "|")
}

// DamageForPropertyChange computes the restyle damage resulting from changing
// a single style property.
//
// Properties which influence box classification or generated content require
// reconstruction. Other properties affecting geometry cause a reflow
// with new intrinsic sizes, everything else is a repaint.
func DamageForPropertyChange(key string) RestyleDamage {
	switch key {
	case "display", "original-display", "position", "float", "content",
		"column-count", "column-width", "unicode-bidi", "direction",
		"list-style-type", "list-style-image", "list-style-position",
		"caption-side", "empty-cells", "white-space", "flex-direction",
		"-x-fragmentable", "writing-mode":
		return RebuildAll
	case "color", "background-color", "visibility":
		return Repaint
	}
	switch GroupNameFromPropertyKey(key) {
	case PGColor:
		return Repaint
	case PGBorder:
		if strings.HasSuffix(key, "-color") {
			return Repaint
		}
	}
	return Repaint | BubbleISizes | Reflow
}
