package style

// PseudoElement denotes the pseudo-element category of a styled node
// or of a box generated for it.
type PseudoElement uint8

// Pseudo-element categories with a construction slot of their own.
const (
	PseudoNormal PseudoElement = iota
	PseudoBefore
	PseudoAfter
	PseudoDetailsSummary
	PseudoDetailsContent
)

// PseudoElementCount is the number of pseudo-element categories.
const PseudoElementCount = 5

func (pe PseudoElement) String() string {
	switch pe {
	case PseudoNormal:
		return "normal"
	case PseudoBefore:
		return "::before"
	case PseudoAfter:
		return "::after"
	case PseudoDetailsSummary:
		return "::details-summary"
	case PseudoDetailsContent:
		return "::details-content"
	}
	return "::?"
}

// IsReplacedContent is true for pseudo-elements whose content is given by
// the 'content' property.
func (pe PseudoElement) IsReplacedContent() bool {
	return pe == PseudoBefore || pe == PseudoAfter
}

// AnonymousKind names a style overlay for boxes that have no originating
// element of their own.
type AnonymousKind uint8

// Anonymous style overlays.
const (
	AnonText AnonymousKind = iota
	AnonInputText
	AnonLegacyTableWrapper
	AnonTableWrapper
	AnonTable
	AnonTableRow
	AnonTableCell
	AnonBlock
	AnonInlineBlockWrapper
	AnonInlineAbsolute
)

var anonymousNames = [...]string{
	"text", "input-text", "legacy-table-wrapper", "anonymous-table-wrapper",
	"anonymous-table", "anonymous-table-row", "anonymous-table-cell",
	"anonymous-block", "inline-block-wrapper", "inline-absolute",
}

func (ak AnonymousKind) String() string {
	if int(ak) < len(anonymousNames) {
		return anonymousNames[ak]
	}
	return "anonymous-?"
}
