// Package convert drives batch rendering of markup files, directories and
// zip archives into document tree dumps.
package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"richdoc/archive"
	"richdoc/common"
	"richdoc/doc"
	"richdoc/markup"
	"richdoc/state"
)

// StdStream is source (and destination) name meaning standard input (output).
const StdStream = "-"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	if cmd.IsSet("to") {
		format, err := common.ParseOutputFmt(cmd.String("to"))
		if err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Stringer("format", env.Format), zap.Error(err))
		} else {
			env.Format = format
		}
	}
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src == StdStream {
		return renderStream(ctx, os.Stdin, os.Stdout, log)
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// renderStream renders single markup document from r into w.
func renderStream(ctx context.Context, r io.Reader, w io.Writer, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	tree, err := render(ctx, r, StdStream, kindHTML)
	if err != nil {
		return err
	}
	data, err := Encode(tree, env.Format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	log.Debug("Stream rendered", zap.Int("blocks", len(tree.Children)), zap.Int("bytes", len(data)))
	return nil
}

// process handles the core conversion logic independently of CLI framework.
// It determines the input type (directory, archive, path inside archive or
// single file) and processes accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		kind := detectKind(head, &env.Cfg.Document.Input)
		if kind != kindUnknown && len(tail) == 0 {
			if err := processFile(ctx, head, filepath.Base(head), dst, kind, log); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			}
			break
		}
		return fmt.Errorf("input was not recognized as markup (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding markup files and archives and
// processes them.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			count++
			if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		kind := detectKind(path, &env.Cfg.Document.Input)
		if kind == kindUnknown {
			log.Debug("Skipping file, not recognized as markup or archive", zap.String("file", path))
			return nil
		}

		count++
		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processFile(ctx, path, src, dst, kind, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// processArchive walks all files inside archive, finds markup files under
// "pathIn" and processes them in natural name order.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	return archive.Walk(path, pathIn, env.CodePage, func(archive, name string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		kind := detectKind(name, &env.Cfg.Document.Input)
		if kind == kindUnknown {
			log.Debug("Skipping file, not recognized as markup", zap.String("archive", archive), zap.String("file", name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", archive), zap.String("file", name), zap.Error(err))
			return nil
		}
		defer r.Close()

		if err := processDocument(ctx, r, filepath.Join(pathOut, filepath.FromSlash(name)), dst, kind, log); err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", archive), zap.String("file", name), zap.Error(err))
		}
		return nil
	})
}

func processFile(ctx context.Context, path, src, dst string, kind srcKind, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return processDocument(ctx, file, src, dst, kind, log)
}

// processDocument renders single markup document. "src" is part of the
// source path (always including file name) relative to the original path.
// When actual file was specified it will be just base file name without a
// path. When looking inside archive or directory it will be relative path
// inside archive or directory. "dst" is the destination directory where the
// result should be written.
func processDocument(ctx context.Context, r io.Reader, src, dst string, kind srcKind, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Conversion starting", zap.String("from", src), zap.Stringer("kind", kind))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	tree, err := render(ctx, r, src, kind)
	if err != nil {
		return err
	}
	data, err := Encode(tree, env.Format)
	if err != nil {
		return err
	}

	outputName = buildOutputPath(src, dst, title(tree), env)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	env.Rpt.Store(path.Join("results", filepath.ToSlash(src)+env.Format.Ext()), outputName)
	return nil
}

// render reads markup (decoding it when necessary) and builds the document
// tree. Source is kept in the debug report.
func render(ctx context.Context, r io.Reader, src string, kind srcKind) (*doc.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read source (%s): %w", src, err)
	}
	env.Rpt.StoreData(path.Join("sources", filepath.ToSlash(src)), raw)

	ur, err := markup.NewReader(bytes.NewReader(raw), "", env.Charset)
	if kind == kindMarkdown && env.Charset == nil {
		// markdown has no meta tags to look at
		ur, err = bytes.NewReader(raw), nil
	}
	if err != nil {
		return nil, err
	}
	text, err := io.ReadAll(ur)
	if err != nil {
		return nil, fmt.Errorf("unable to decode source (%s): %w", src, err)
	}

	if kind == kindMarkdown {
		html, err := markup.FromMarkdown(text)
		if err != nil {
			return nil, fmt.Errorf("unable to process markdown (%s): %w", src, err)
		}
		text = []byte(html)
	}

	tree, err := env.Gen.Generate(string(text))
	if err != nil {
		return nil, fmt.Errorf("unable to generate document (%s): %w", src, err)
	}
	env.Rpt.StoreData(path.Join("trees", filepath.ToSlash(src)+".txt"), []byte(tree.String()))
	return tree, nil
}
