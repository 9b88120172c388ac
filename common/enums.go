// Package common keeps enums shared by configuration, batch conversion and
// the HTTP endpoint.
package common

//go:generate go tool go-enum --marshal --names --nocase

// Specification of requested output type.
// ENUM(text, xml, yaml)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtText:
		return ".txt"
	case OutputFmtXml:
		return ".xml"
	case OutputFmtYaml:
		return ".yaml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// ContentType is used when document is sent over HTTP.
func (o OutputFmt) ContentType() string {
	switch o {
	case OutputFmtXml:
		return "application/xml; charset=utf-8"
	case OutputFmtYaml:
		return "application/yaml; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
