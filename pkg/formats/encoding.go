package formats

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
)

// LookupNameEncoding maps a configuration name to a character encoding for
// name strings. An empty name or "raw" returns nil (bytes pass through).
func LookupNameEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "raw":
		return nil, nil
	case "cp437", "ibm437", "dos":
		return charmap.CodePage437, nil
	case "cp850", "ibm850":
		return charmap.CodePage850, nil
	case "windows1252", "cp1252":
		return charmap.Windows1252, nil
	case "latin1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "euc-kr", "euckr", "cp949":
		return korean.EUCKR, nil
	default:
		return nil, fmt.Errorf("unknown name encoding %q", name)
	}
}
