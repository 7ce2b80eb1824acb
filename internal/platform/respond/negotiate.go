package respond

import (
	"strconv"
	"strings"
)

// mediaRange is one element of an Accept header.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into lower-cased media ranges. A range
// without a slash is treated as type/*; q values that are missing, malformed
// or outside [0, 1] count as 1.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		if mt == "" {
			continue
		}
		typ, subtype, ok := strings.Cut(mt, "/")
		if !ok {
			subtype = "*"
		}
		mr := mediaRange{typ: strings.TrimSpace(typ), subtype: strings.TrimSpace(subtype), q: 1}
		for _, p := range params[1:] {
			key, value, _ := strings.Cut(strings.TrimSpace(p), "=")
			if strings.ToLower(strings.TrimSpace(key)) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && q >= 0 && q <= 1 {
				mr.q = q
			}
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// specificity ranks how precisely r names the given format ("json" or
// "cbor"): problem+format 4, format 3, *+format 2, application/* 1, */* 0.
// It returns -1 when r does not match.
func (r mediaRange) specificity(format string) int {
	switch {
	case r.typ == "*" && r.subtype == "*":
		return 0
	case r.typ != "application":
		return -1
	case r.subtype == "problem+"+format:
		return 4
	case r.subtype == format:
		return 3
	case r.subtype == "*+"+format:
		return 2
	case r.subtype == "*":
		return 1
	default:
		return -1
	}
}

// preference returns the q value and specificity of the most specific range
// matching format, or (0, -1) when nothing matches.
func preference(ranges []mediaRange, format string) (float64, int) {
	q, best := 0.0, -1
	for _, r := range ranges {
		if s := r.specificity(format); s > best {
			q, best = r.q, s
		}
	}
	return q, best
}

// selectFormat reports whether CBOR should be used for a response given the
// Accept header. Higher q wins, specificity breaks ties, and JSON is the
// default whenever CBOR is not strictly preferred.
func selectFormat(accept string) bool {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return false
	}
	cborQ, cborSpec := preference(ranges, "cbor")
	if cborSpec < 0 || cborQ <= 0 {
		return false
	}
	jsonQ, jsonSpec := preference(ranges, "json")
	if cborQ != jsonQ {
		return cborQ > jsonQ
	}
	return cborSpec > jsonSpec
}
