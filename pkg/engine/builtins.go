package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/strata/pkg/geom"
	"github.com/chazu/strata/pkg/tower"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms layer script source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: line-width -> line_width
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPolygon wraps a geom.Polygon so contour builtins can return it
// for display and composition.
type sexpPolygon struct {
	poly geom.Polygon
}

func (p *sexpPolygon) SexpString(ps *zygo.PrintState) string {
	lo, hi := p.poly.BoundingBox()
	return fmt.Sprintf("(polygon %d vertices, %dx%d um)", len(p.poly), hi.X-lo.X, hi.Y-lo.Y)
}
func (p *sexpPolygon) Type() *zygo.RegisteredType { return nil }

// sexpTower wraps a tower.Config returned from the `tower` builtin.
type sexpTower struct {
	cfg *tower.Config
}

func (t *sexpTower) SexpString(ps *zygo.PrintState) string {
	shape := "square"
	if t.cfg.Circular {
		shape = "circular"
	}
	return fmt.Sprintf("(tower %s, size %d um)", shape, t.cfg.Size)
}
func (t *sexpTower) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toCoord extracts a coordinate in millimeters and converts it to integer
// micrometers. Script coordinates are millimeters; the geometry core works
// in micrometers.
func toCoord(s zygo.Sexp) (int64, error) {
	mm, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(mm * 1000)), nil
}

// toBool extracts a boolean from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// addPolygon validates a contour and appends it to the document.
func addPolygon(doc *Document, poly geom.Polygon, builtin string) (zygo.Sexp, error) {
	if errs := poly.Validate(); len(errs) > 0 {
		return zygo.SexpNull, fmt.Errorf("%s: %s", builtin, errs[0].Message)
	}
	doc.Polygons = append(doc.Polygons, poly)
	return &sexpPolygon{poly: poly}, nil
}

// registerBuiltins installs the layer script builtins into a zygomys
// environment. The builtins populate the provided Document during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, doc *Document) {

	// -----------------------------------------------------------------------
	// (settings :line-width 0.4 :max-dist 2.0)
	//
	// Values are millimeters. Call before `tower`, which inherits the
	// current line width.
	// -----------------------------------------------------------------------
	env.AddFunction("settings", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if v, ok := pa.kw["line-width"]; ok {
			w, err := toCoord(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("settings: line-width: %w", err)
			}
			if w <= 0 {
				return zygo.SexpNull, fmt.Errorf("settings: line-width must be positive")
			}
			doc.LineWidth = w
		}
		if v, ok := pa.kw["max-dist"]; ok {
			d, err := toCoord(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("settings: max-dist: %w", err)
			}
			if d <= 0 {
				return zygo.SexpNull, fmt.Errorf("settings: max-dist must be positive")
			}
			doc.MaxDist = d
		}

		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (polygon 0 0  10 0  10 10  0 10)
	//
	// Flat list of x y coordinate pairs in millimeters.
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 6 || len(args)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("polygon requires an even number of coordinates, at least 3 x y pairs, got %d values", len(args))
		}

		poly := make(geom.Polygon, 0, len(args)/2)
		for i := 0; i < len(args); i += 2 {
			x, err := toCoord(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: coordinate %d: %w", i, err)
			}
			y, err := toCoord(args[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: coordinate %d: %w", i+1, err)
			}
			poly = append(poly, geom.Point{X: x, Y: y})
		}

		return addPolygon(doc, poly, "polygon")
	})

	// -----------------------------------------------------------------------
	// (rect :x 0 :y 0 :w 10 :h 5)
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var x, y, w, h int64
		for _, kv := range []struct {
			key string
			dst *int64
		}{{"x", &x}, {"y", &y}, {"w", &w}, {"h", &h}} {
			v, ok := pa.kw[kv.key]
			if !ok {
				continue
			}
			c, err := toCoord(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: %s: %w", kv.key, err)
			}
			*kv.dst = c
		}
		if w <= 0 || h <= 0 {
			return zygo.SexpNull, fmt.Errorf("rect: width and height must be positive, got %dx%d um", w, h)
		}

		poly := geom.Polygon{
			{X: x, Y: y},
			{X: x + w, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
		}
		return addPolygon(doc, poly, "rect")
	})

	// -----------------------------------------------------------------------
	// (ring :x 5 :y 5 :r 3 :segments 32)
	// -----------------------------------------------------------------------
	env.AddFunction("ring", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var cx, cy, r int64
		segments := 32
		for _, kv := range []struct {
			key string
			dst *int64
		}{{"x", &cx}, {"y", &cy}, {"r", &r}} {
			v, ok := pa.kw[kv.key]
			if !ok {
				continue
			}
			c, err := toCoord(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ring: %s: %w", kv.key, err)
			}
			*kv.dst = c
		}
		if v, ok := pa.kw["segments"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ring: segments: %w", err)
			}
			segments = n
		}
		if r <= 0 {
			return zygo.SexpNull, fmt.Errorf("ring: radius must be positive")
		}
		if segments < 3 {
			return zygo.SexpNull, fmt.Errorf("ring: segments must be at least 3, got %d", segments)
		}

		poly := make(geom.Polygon, 0, segments)
		for i := 0; i < segments; i++ {
			angle := 2 * math.Pi * float64(i) / float64(segments)
			poly = append(poly, geom.Point{
				X: cx + int64(math.Round(float64(r)*math.Cos(angle))),
				Y: cy + int64(math.Round(float64(r)*math.Sin(angle))),
			})
		}
		return addPolygon(doc, poly, "ring")
	})

	// -----------------------------------------------------------------------
	// (tower :size 6 :x 30 :y 0 :circular true
	//        :layer-height 0.2 :flow 1.0 :min-volume 2.0)
	//
	// The tower inherits the document's line width as set at call time.
	// -----------------------------------------------------------------------
	env.AddFunction("tower", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cfg := &tower.Config{
			LineWidth:   doc.LineWidth,
			LayerHeight: 200,
			Flow:        1.0,
		}

		for _, kv := range []struct {
			key string
			dst *int64
		}{{"size", &cfg.Size}, {"x", &cfg.X}, {"y", &cfg.Y},
			{"line-width", &cfg.LineWidth}, {"layer-height", &cfg.LayerHeight}} {
			v, ok := pa.kw[kv.key]
			if !ok {
				continue
			}
			c, err := toCoord(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tower: %s: %w", kv.key, err)
			}
			*kv.dst = c
		}
		if v, ok := pa.kw["circular"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tower: circular: %w", err)
			}
			cfg.Circular = b
		}
		if v, ok := pa.kw["flow"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tower: flow: %w", err)
			}
			cfg.Flow = f
		}
		if v, ok := pa.kw["min-volume"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tower: min-volume: %w", err)
			}
			cfg.MinVolume = f
		}

		if err := cfg.Validate(); err != nil {
			return zygo.SexpNull, err
		}

		doc.Tower = cfg
		return &sexpTower{cfg: cfg}, nil
	})
}
