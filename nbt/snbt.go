package nbt

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
)

// SNBTOptions configures the SNBT renderer.
type SNBTOptions struct {
	// Pretty adds newlines and indentation.
	Pretty bool

	// Indent string for pretty mode (default: "  ").
	Indent string
}

// DefaultSNBTOptions returns sensible defaults.
func DefaultSNBTOptions() SNBTOptions {
	return SNBTOptions{Pretty: false, Indent: "  "}
}

// FormatSNBT renders a tag tree as SNBT-style text for inspection. The output
// is for humans and diffs; there is no SNBT parser in this package.
func FormatSNBT(t *Tag) string {
	return FormatSNBTWithOptions(t, DefaultSNBTOptions())
}

// FormatSNBTWithOptions renders with custom options.
func FormatSNBTWithOptions(t *Tag, opts SNBTOptions) string {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	r := &renderer{opts: opts}
	r.render(t, 0)
	return r.sb.String()
}

type renderer struct {
	sb   strings.Builder
	opts SNBTOptions
}

func (r *renderer) render(t *Tag, depth int) {
	if t == nil {
		r.sb.WriteString("<nil>")
		return
	}

	switch t.typ {
	case TypeEnd:
		r.sb.WriteString("END")

	case TypeByte:
		r.sb.WriteString(strconv.FormatInt(t.intVal, 10))
		r.sb.WriteByte('b')

	case TypeShort:
		r.sb.WriteString(strconv.FormatInt(t.intVal, 10))
		r.sb.WriteByte('s')

	case TypeInt:
		r.sb.WriteString(strconv.FormatInt(t.intVal, 10))

	case TypeLong:
		r.sb.WriteString(strconv.FormatInt(t.intVal, 10))
		r.sb.WriteByte('L')

	case TypeFloat:
		r.renderFloat(float32(t.floatVal))

	case TypeDouble:
		r.renderDouble(t.floatVal)

	case TypeString:
		r.renderString(t.strVal)

	case TypeByteArray:
		// Byte arrays are usually opaque blobs; base64 keeps them one line.
		r.sb.WriteString("[B;b64\"")
		r.sb.WriteString(base64.StdEncoding.EncodeToString(t.byteArr))
		r.sb.WriteString("\"]")

	case TypeIntArray:
		r.sb.WriteString("[I;")
		for i, v := range t.intArr {
			if i > 0 {
				r.sb.WriteByte(',')
			}
			r.sb.WriteString(strconv.FormatInt(int64(v), 10))
		}
		r.sb.WriteByte(']')

	case TypeLongArray:
		r.sb.WriteString("[L;")
		for i, v := range t.longArr {
			if i > 0 {
				r.sb.WriteByte(',')
			}
			r.sb.WriteString(strconv.FormatInt(v, 10))
		}
		r.sb.WriteByte(']')

	case TypeList:
		r.renderList(t, depth)

	case TypeCompound:
		r.renderCompound(t, depth)
	}
}

func (r *renderer) renderFloat(f float32) {
	if math.IsNaN(float64(f)) {
		r.sb.WriteString("NaNf")
		return
	}
	r.sb.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	r.sb.WriteByte('f')
}

func (r *renderer) renderDouble(f float64) {
	if math.IsNaN(f) {
		r.sb.WriteString("NaNd")
		return
	}
	r.sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	r.sb.WriteByte('d')
}

func (r *renderer) renderString(s string) {
	r.sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			r.sb.WriteString("\\\"")
		case '\\':
			r.sb.WriteString("\\\\")
		case '\n':
			r.sb.WriteString("\\n")
		default:
			r.sb.WriteRune(c)
		}
	}
	r.sb.WriteByte('"')
}

func (r *renderer) renderList(t *Tag, depth int) {
	r.sb.WriteByte('[')
	for i, e := range t.listVal {
		if i > 0 {
			r.sb.WriteByte(',')
		}
		if r.opts.Pretty {
			r.sb.WriteByte('\n')
			r.writeIndent(depth + 1)
		}
		r.render(e, depth+1)
	}
	if r.opts.Pretty && len(t.listVal) > 0 {
		r.sb.WriteByte('\n')
		r.writeIndent(depth)
	}
	r.sb.WriteByte(']')
}

func (r *renderer) renderCompound(t *Tag, depth int) {
	r.sb.WriteByte('{')
	for i, e := range t.compoundVal {
		if i > 0 {
			r.sb.WriteByte(',')
		}
		if r.opts.Pretty {
			r.sb.WriteByte('\n')
			r.writeIndent(depth + 1)
		}
		r.renderString(e.Name)
		r.sb.WriteByte(':')
		r.render(e.Tag, depth+1)
	}
	if r.opts.Pretty && len(t.compoundVal) > 0 {
		r.sb.WriteByte('\n')
		r.writeIndent(depth)
	}
	r.sb.WriteByte('}')
}

func (r *renderer) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		r.sb.WriteString(r.opts.Indent)
	}
}
