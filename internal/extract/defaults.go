package extract

// DefaultAnchor is the section label that precedes the Sinhala output
const DefaultAnchor = "Sinhala"

// DefaultTerminators close the output region: the redo glyph, the Clear
// button label and the English section label.
var DefaultTerminators = []string{"🔁", "Clear", "English"}
