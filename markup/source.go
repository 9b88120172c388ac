package markup

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/h2non/filetype"

	"richdoc/doc"
)

// ParseSource parses reference to external content permissively, relative
// references are resolved against base when it is given. On failure returned
// source keeps raw value only. For "data:" references MIME type of the
// payload is detected.
func ParseSource(raw string, base *url.URL) *doc.Source {
	src := &doc.Source{Raw: raw}

	ref := strings.TrimSpace(raw)
	if ref == "" {
		return src
	}
	u, err := url.Parse(ref)
	if err != nil {
		return src
	}

	if strings.EqualFold(u.Scheme, "data") {
		src.URI = ref
		src.MimeType = dataMimeType(u.Opaque)
		return src
	}

	if base != nil && !u.IsAbs() {
		u = base.ResolveReference(u)
	}
	src.URI = u.String()
	return src
}

// ParseTarget is ParseSource for links, it returns resolved target or empty
// string.
func ParseTarget(raw string, base *url.URL) string {
	return ParseSource(raw, base).URI
}

// dataMimeType returns MIME type of the data URL payload, sniffing the
// content when possible and falling back to declared media type.
func dataMimeType(opaque string) string {
	meta, payload, found := strings.Cut(opaque, ",")
	if !found {
		return ""
	}

	declared := meta
	isBase64 := false
	if m, ok := strings.CutSuffix(meta, ";base64"); ok {
		declared, isBase64 = m, true
	}
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = declared[:i]
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return declared
		}
		data = decoded
	} else if unescaped, err := url.PathUnescape(payload); err == nil {
		data = []byte(unescaped)
	}

	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return declared
}
