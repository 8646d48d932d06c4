package record

import (
	"strconv"
	"strings"
)

// MatchKey identifies a logical entity across source and target. Two records describe the
// same entity iff their keys are equal. Keys are comparable and safe to use as map keys.
type MatchKey struct {
	// encoded holds each part as "<len>:<text>" so distinct part lists never collide.
	encoded string
}

// KeyOf derives the key of r for the ordered match fields, rendering each value with
// Value.Text (null renders as "").
func KeyOf(r Record, matchFields []string) MatchKey {
	var b strings.Builder
	for _, name := range matchFields {
		part := r.Get(name).Text()
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}
	return MatchKey{encoded: b.String()}
}

// Parts decodes the ordered match-field texts the key was built from.
func (k MatchKey) Parts() []string {
	var parts []string
	rest := k.encoded
	for rest != "" {
		sep := strings.IndexByte(rest, ':')
		if sep < 0 {
			break
		}
		n, err := strconv.Atoi(rest[:sep])
		if err != nil || sep+1+n > len(rest) {
			break
		}
		parts = append(parts, rest[sep+1:sep+1+n])
		rest = rest[sep+1+n:]
	}
	return parts
}

// String returns the parts joined with "|", for logs.
func (k MatchKey) String() string {
	return strings.Join(k.Parts(), "|")
}

// Label joins the non-empty match-field texts of r with a comma.
// It returns "" when every match field is empty or null.
func Label(r Record, matchFields []string) string {
	parts := make([]string, 0, len(matchFields))
	for _, name := range matchFields {
		if name == "" {
			continue
		}
		if text := r.Get(name).Text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, ",")
}
