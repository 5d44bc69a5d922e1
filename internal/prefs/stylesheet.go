package prefs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const styleSheetHeader = "/* accessblock user styles */\n"

// RenderStyleSheet maps a preference onto CSS overriding the page's font
// size and colours. The output depends only on its inputs, so identical
// preferences produce byte-identical sheets.
func RenderStyleSheet(pref *Preference, cat Catalogue) []byte {
	var b strings.Builder
	b.WriteString(styleSheetHeader)

	if pref == nil {
		return []byte(b.String())
	}
	p := pref.Normalized()

	if p.FontStep != nil {
		percent := strconv.FormatFloat(FontPercent(*p.FontStep), 'f', -1, 64)
		fmt.Fprintf(&b, "#page {\n\tfont-size: %s%% !important;\n}\n", percent)
		b.WriteString("#page * {\n\tfont-size: inherit;\n}\n")
	}

	if p.ColourScheme != nil {
		if s, ok := cat.Scheme(*p.ColourScheme); ok && s.Background != "" {
			b.WriteString("body,\n#page,\n#page * {\n")
			fmt.Fprintf(&b, "\tbackground-color: %s !important;\n", strings.ToUpper(s.Background))
			b.WriteString("\tbackground-image: none !important;\n")
			if s.Foreground != "" {
				fmt.Fprintf(&b, "\tcolor: %s !important;\n", strings.ToUpper(s.Foreground))
			}
			b.WriteString("}\n")
		}
	}

	return []byte(b.String())
}

// ETag returns a strong entity tag for a rendered stylesheet.
func ETag(css []byte) string {
	sum := sha256.Sum256(css)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
