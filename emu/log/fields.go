package log

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type FieldType uint8

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeHex32
	FieldTypeHex64
	FieldTypeInt
	FieldTypeUint
	FieldTypeFloat
	FieldTypeError
	FieldTypeDuration
	FieldTypeStringer
	FieldTypeBlob
)

// hexDigits is the zero-padded width of each hex field type.
var hexDigits = [...]int{
	FieldTypeHex8:  2,
	FieldTypeHex16: 4,
	FieldTypeHex32: 8,
	FieldTypeHex64: 16,
}

// ZField is a typed log field. Integer holds every integer and hex type,
// Float the float ones, the other values have their own slot.
type ZField struct {
	Type FieldType
	Key  string

	String    string
	Integer   uint64
	Float     float64
	Duration  time.Duration
	Error     error
	Interface any
	Boolean   bool
	Blob      []byte
}

func formatHex(v uint64, digits int) string {
	s := strconv.FormatUint(v, 16)
	if len(s) >= digits {
		return s
	}
	return strings.Repeat("0", digits-len(s)) + s
}

// Value formats the field value for the log backend.
func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeHex8, FieldTypeHex16, FieldTypeHex32, FieldTypeHex64:
		return formatHex(f.Integer, hexDigits[f.Type])
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeUint:
		return strconv.FormatUint(f.Integer, 10)
	case FieldTypeFloat:
		return strconv.FormatFloat(f.Float, 'g', -1, 64)
	case FieldTypeBool:
		return strconv.FormatBool(f.Boolean)
	case FieldTypeString:
		return f.String
	case FieldTypeDuration:
		return f.Duration.String()
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	case FieldTypeStringer:
		return f.Interface.(fmt.Stringer).String()
	case FieldTypeBlob:
		return hex.EncodeToString(f.Blob)
	}
	return ""
}
