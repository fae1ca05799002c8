package settings

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// documentMarker delimits the structured frontmatter block at the top of the
// settings document. Everything after the closing marker is free-form notes
// for the operator and is ignored on load.
const documentMarker = "---"

// decodeDocument parses the frontmatter block of a settings document into a
// Record. The document must begin with the marker on its own line.
func decodeDocument(data []byte) (Record, error) {
	var rec Record

	if !bytes.HasPrefix(data, []byte(documentMarker)) {
		return rec, fmt.Errorf("document does not start with %q marker", documentMarker)
	}

	rest := data[len(documentMarker):]
	end := bytes.Index(rest, []byte("\n"+documentMarker))
	if end < 0 {
		return rec, fmt.Errorf("unterminated frontmatter block")
	}

	if err := yaml.Unmarshal(rest[:end], &rec); err != nil {
		return rec, fmt.Errorf("parsing frontmatter: %w", err)
	}

	return rec, nil
}

// encodeDocument renders a Record as a frontmatter block followed by a short
// human-readable notes section.
func encodeDocument(rec Record) ([]byte, error) {
	fm, err := yaml.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(documentMarker + "\n")
	buf.Write(fm)
	buf.WriteString(documentMarker + "\n")

	expiresAt := time.Unix(rec.TokenExpiresAt, 0)
	fmt.Fprintf(&buf, `
# linkedinctl settings

Authenticated as **%s** (%s).

Token expires at: %s

To re-authenticate, run `+"`linkedinctl login`"+` again.
`, rec.DisplayName, rec.PersonURN, expiresAt.Format("2006-01-02 15:04:05"))

	return buf.Bytes(), nil
}
