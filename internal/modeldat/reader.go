package modeldat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/vk/xspecgen/internal/ctxlog"
	"github.com/vk/xspecgen/internal/model"
)

// Options tune how entries are built from the file.
type Options struct {
	// NameFunc builds class names; nil selects PrefixNamer("XS").
	NameFunc NameFunc
	// ReservedWords get a trailing underscore; nil selects DefaultReservedWords.
	ReservedWords []string
	// Renames overrides the translated name of individual parameters,
	// keyed by model name and then original parameter name.
	Renames map[string]map[string]string
	// Norm, when set, is applied to the implicit norm parameter of
	// additive models after it is parsed from NormDefinition.
	Norm func(*model.Parameter)
}

// Reader produces model entries one record at a time.
type Reader struct {
	file       string
	scanner    *bufio.Scanner
	line       int
	logger     *slog.Logger
	nameFunc   NameFunc
	translator *Translator
	norm       func(*model.Parameter)
	seen       map[string]int
	closer     io.Closer
}

// NewReader wraps src. The file name is only used in error messages.
func NewReader(ctx context.Context, file string, src io.Reader, opts Options) (*Reader, error) {
	nameFunc := opts.NameFunc
	if nameFunc == nil {
		nameFunc = PrefixNamer("XS")
	}
	if err := ValidateNameFunc(nameFunc); err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &Reader{
		file:       file,
		scanner:    sc,
		logger:     ctxlog.FromContext(ctx),
		nameFunc:   nameFunc,
		translator: NewTranslator(opts.ReservedWords, opts.Renames),
		norm:       opts.Norm,
		seen:       make(map[string]int),
	}, nil
}

// Open opens path for reading. The caller must Close the Reader.
func Open(ctx context.Context, path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model description file: %w", err)
	}
	r, err := NewReader(ctx, path, f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Close releases the underlying file when the Reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// ParseFile reads every entry of path.
func ParseFile(ctx context.Context, path string, opts Options) ([]*model.Entry, error) {
	r, err := Open(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out []*model.Entry
	for entry, err := range r.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// All returns a lazy sequence of entries. Iteration stops after the first
// error, which is yielded with a nil entry.
func (r *Reader) All() iter.Seq2[*model.Entry, error] {
	return func(yield func(*model.Entry, error) bool) {
		for {
			entry, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

// Next parses the next record. It returns io.EOF when the input holds no
// further headers.
func (r *Reader) Next() (*model.Entry, error) {
	hdr, ok := r.nextNonBlank()
	if !ok {
		if err := r.scanner.Err(); err != nil {
			return nil, r.fail("read error", err)
		}
		return nil, io.EOF
	}
	hdrLine := r.line
	r.logger.Debug("Processing header line.", "line", hdrLine, "header", hdr)

	entry, npars, err := r.parseHeader(hdr)
	if err != nil {
		return nil, err
	}

	for len(entry.Params) < npars {
		pline, ok := r.nextNonBlank()
		if !ok {
			return nil, r.fail(fmt.Sprintf("unexpected end of file in model %s: read %d of %d parameters", entry.Name, len(entry.Params), npars), r.scanner.Err())
		}
		r.logger.Debug("Processing parameter line.", "model", entry.Name, "index", len(entry.Params)+1, "npars", npars)

		p, err := r.parseParameter(pline, entry.Name)
		if err != nil {
			return nil, r.fail(fmt.Sprintf("invalid parameter in model %s", entry.Name), err)
		}
		if p.Name != p.Original {
			r.logger.Debug("Converted parameter name.", "model", entry.Name, "from", p.Original, "to", p.Name)
		}
		entry.Params = append(entry.Params, p)
	}

	if entry.Category == model.CategoryAdditive {
		norm, err := r.parseParameter(NormDefinition, entry.Name)
		if err != nil {
			// NormDefinition is a constant; this only fires if it is edited.
			return nil, r.fail("invalid norm definition", err)
		}
		if r.norm != nil {
			r.norm(&norm)
		}
		entry.Params = append(entry.Params, norm)
	}

	if err := checkUniqueNames(entry); err != nil {
		return nil, &ParseError{File: r.file, Line: hdrLine, Reason: err.Error()}
	}

	if prev, dup := r.seen[entry.Name]; dup {
		return nil, &ParseError{File: r.file, Line: hdrLine, Reason: fmt.Sprintf("duplicate model name %q (first defined on line %d)", entry.Name, prev)}
	}
	r.seen[entry.Name] = hdrLine

	r.logger.Debug("Read model definition.", "model", entry.Name, "routine", entry.Routine, "type", entry.Category.Label(), "language", entry.Language.String(), "npars", entry.NumParams())
	return entry, nil
}

// parseHeader decodes "name npars elo ehi routine type flag [flag] [init]".
func (r *Reader) parseHeader(hdr string) (*model.Entry, int, error) {
	toks := strings.Fields(hdr)
	if len(toks) < 7 || len(toks) > 9 {
		return nil, 0, r.fail(fmt.Sprintf("expected: modelname npars elo ehi funcname modeltype i1 [i2] [init] but found %d fields", len(toks)), nil)
	}

	npars, err := strconv.Atoi(toks[1])
	if err != nil {
		return nil, 0, r.fail(fmt.Sprintf("non-numeric parameter count %q", toks[1]), nil)
	}
	if npars < 0 {
		return nil, 0, r.fail(fmt.Sprintf("number of parameters is %d", npars), nil)
	}

	energies, err := parseFloats(toks[2:4])
	if err != nil {
		return nil, 0, r.fail("invalid energy range", err)
	}

	category, err := model.ParseCategory(toks[5])
	if err != nil {
		return nil, 0, r.fail("invalid model type", err)
	}

	flags, init, err := parseFlags(toks[6:])
	if err != nil {
		return nil, 0, r.fail("invalid model flags", err)
	}

	entry := &model.Entry{
		Name:       toks[0],
		ClassName:  r.nameFunc(toks[0]),
		Routine:    toks[4],
		Language:   model.LanguageOf(toks[4]),
		Category:   category,
		Flags:      flags,
		InitString: init,
		EnergyLow:  energies[0],
		EnergyHigh: energies[1],
		Params:     make([]model.Parameter, 0, npars+1),
		Source:     model.NewSource(r.file, r.line),
	}
	return entry, npars, nil
}

// parseFlags reads the error flag, the optional per-spectrum flag and an
// optional trailing initialisation string.
func parseFlags(toks []string) (model.Flags, string, error) {
	var flags model.Flags
	var ints []int
	init := ""
	for i, t := range toks {
		v, err := strconv.Atoi(t)
		if err != nil {
			if i == 0 || i != len(toks)-1 {
				return flags, "", fmt.Errorf("non-integer flag %q", t)
			}
			init = t
			break
		}
		ints = append(ints, v)
	}
	if len(ints) > 2 {
		return flags, "", fmt.Errorf("expected at most 2 integer flags, found %d", len(ints))
	}
	if len(ints) > 0 {
		flags.Error = ints[0] == 1
	}
	if len(ints) > 1 {
		flags.PerSpectrum = ints[1] == 1
	}
	return flags, init, nil
}

// checkUniqueNames rejects models whose parameter names collide once case
// is ignored.
func checkUniqueNames(entry *model.Entry) error {
	groups := make(map[string][]string)
	var order []string
	for _, p := range entry.Params {
		key := strings.ToLower(p.Name)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p.Name)
	}
	var clashes []string
	for _, key := range order {
		if names := groups[key]; len(names) > 1 {
			clashes = append(clashes, strings.Join(names, " and "))
		}
	}
	if len(clashes) > 0 {
		return fmt.Errorf("the parameters in model=%s do not have unique names: %s", entry.Name, strings.Join(clashes, "; "))
	}
	return nil
}

func (r *Reader) nextNonBlank() (string, bool) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

func (r *Reader) translate(modelName, par string) string {
	return r.translator.Translate(modelName, par)
}

func (r *Reader) fail(reason string, err error) *ParseError {
	return &ParseError{File: r.file, Line: r.line, Reason: reason, Err: err}
}
