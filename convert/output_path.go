package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"richdoc/config"
	"richdoc/state"
)

// buildOutputPath returns constructed output file path/name. It uses either
// default naming scheme (source name with format extension) or user-defined
// template and takes into account whether to preserve source directory
// structure on the output. It cleans up path and if requested transliterates
// it.
func buildOutputPath(src, dst, docTitle string, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	ext := env.Format.Ext()
	conf := &env.Cfg.Document.Output

	defaultFile := cleanPathSegment(strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)), conf) + ext
	if conf.OutputNameTemplate == "" {
		return filepath.Join(outDir, defaultFile)
	}

	values := newValues(config.OutputNameTemplateFieldName, src, docTitle, env.Format)
	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, conf.OutputNameTemplate, values)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(outDir, defaultFile)
	}

	segments := splitPath(filepath.FromSlash(strings.TrimSpace(expanded)))
	if len(segments) == 0 {
		return filepath.Join(outDir, defaultFile)
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, s := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(s, conf))
	}
	name := strings.TrimSuffix(segments[len(segments)-1], ext)
	parts = append(parts, cleanPathSegment(name, conf)+ext)
	return filepath.Join(parts...)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

// splitPath breaks path into its elements dropping empty ones and those
// pointing up or at the current directory.
func splitPath(path string) []string {
	segments := make([]string, 0, 8)
	for _, s := range strings.Split(path, string(os.PathSeparator)) {
		if s == "" || s == "." || s == ".." {
			continue
		}
		segments = append(segments, s)
	}
	return slices.Clip(segments)
}

func cleanPathSegment(segment string, conf *config.OutputConfig) string {
	if conf.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
