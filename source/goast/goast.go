// Package goast extracts messages written with the runtime message DSL
// (i18n.Msg, i18n.MsgID and friends) from Go source.
package goast

import (
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/token"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	i18n "github.com/goliatone/go-i18n-icu"
)

// DSLPackage is the import path whose calls are recognized.
const DSLPackage = "github.com/goliatone/go-i18n-icu"

// Logger is used for skipped or dynamic message parts.
var Logger = log.With().Str("sys", "goast").Logger()

// UseGlobalLogger rebuilds Logger from the current global zerolog logger.
func UseGlobalLogger() {
	Logger = log.With().Str("sys", "goast").Logger()
}

type Config struct {
	// Dir is the directory packages are loaded from. Origins are relative
	// to it.
	Dir string
	// PackagePath overrides DSLPackage.
	PackagePath string
	// Tests includes test files.
	Tests bool
}

func (c Config) packagePath() string {
	if c.PackagePath != "" {
		return c.PackagePath
	}
	return DSLPackage
}

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo

// Load type-checks the packages matching patterns and returns one unit per
// package.
func Load(ctx context.Context, cfg Config, patterns ...string) ([]i18n.Unit, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     cfg.Dir,
		Tests:   cfg.Tests,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("goast: load packages: %w", err)
	}

	units := make([]i18n.Unit, 0, len(pkgs))
	for _, pkg := range pkgs {
		units = append(units, packageUnit{pkg: pkg, cfg: cfg})
	}
	return units, nil
}

type packageUnit struct {
	pkg *packages.Package
	cfg Config
}

func (u packageUnit) Name() string {
	if u.pkg.ID != "" {
		return u.pkg.ID
	}
	return u.pkg.PkgPath
}

func (u packageUnit) Messages(ctx context.Context) ([]i18n.SourceMessage, error) {
	if len(u.pkg.Errors) > 0 {
		errs := make([]error, 0, len(u.pkg.Errors))
		for _, e := range u.pkg.Errors {
			errs = append(errs, e)
		}
		return nil, errors.Join(errs...)
	}
	if u.pkg.TypesInfo == nil {
		return nil, nil
	}

	w := &walker{
		fset:   u.pkg.Fset,
		root:   u.cfg.Dir,
		res:    typedResolver{info: u.pkg.TypesInfo, packagePath: u.cfg.packagePath()},
		logger: Logger.With().Str("package", u.Name()).Logger(),
	}

	var out []i18n.SourceMessage
	for _, file := range u.pkg.Syntax {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, w.messages(file)...)
	}
	return out, nil
}

// FileUnit extracts a single file without type information. Only literal
// constants and the import name of the DSL package are recognized.
type FileUnit struct {
	Path   string
	Config Config
}

func (u FileUnit) Name() string { return u.Path }

func (u FileUnit) Messages(context.Context) ([]i18n.SourceMessage, error) {
	return ParseFile(u.Path, nil, u.Config)
}

// ParseFile parses a Go file (src may be nil, a string or []byte) and
// returns its messages.
func ParseFile(filename string, src any, cfg Config) ([]i18n.SourceMessage, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("goast: parse %s: %w", filename, err)
	}

	w := &walker{
		fset:   fset,
		root:   cfg.Dir,
		res:    newSyntacticResolver(file, cfg.packagePath()),
		logger: Logger.With().Str("file", filename).Logger(),
	}
	return w.messages(file), nil
}
