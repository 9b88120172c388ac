package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"richdoc/common"
	"richdoc/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context string
	// source file name without extension
	Name string
	// output extension including dot
	Ext    string
	Format string
	// source path relative to the processed directory or archive
	Source string
	// text of the first heading, may be empty
	Title string
}

func newValues(name config.TemplateFieldName, src, docTitle string, format common.OutputFmt) Values {
	return Values{
		Context: string(name),
		Name:    strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Ext:     format.Ext(),
		Format:  format.String(),
		Source:  filepath.ToSlash(src),
		Title:   docTitle,
	}
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
