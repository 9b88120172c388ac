package highlight

// Palette assigns foreground colors to classifications. Empty color means
// default foreground.
type Palette struct {
	Comment    string `yaml:"comment"`
	Identifier string `yaml:"identifier"`
	String     string `yaml:"string"`
	Builtin    string `yaml:"builtin"`
	Keyword    string `yaml:"keyword"`
	Number     string `yaml:"number"`
}

func DefaultPalette() Palette {
	return Palette{
		Comment: "DarkGreen",
		String:  "DarkRed",
		Builtin: "DarkSeaGreen",
		Keyword: "Blue",
		Number:  "Purple",
	}
}

func (p Palette) Color(c Class) string {
	switch c {
	case ClassComment:
		return p.Comment
	case ClassIdentifier:
		return p.Identifier
	case ClassString:
		return p.String
	case ClassBuiltin:
		return p.Builtin
	case ClassKeyword:
		return p.Keyword
	case ClassNumber:
		return p.Number
	default:
		return ""
	}
}
