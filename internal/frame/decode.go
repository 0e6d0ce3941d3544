package frame

import (
	"github.com/goccy/go-json"
	"github.com/palisade-labs/sigcodec/internal/stream"
)

// Decode reverses the cid XOR overlay on wire (the envelope-decoded byte
// buffer, terminator included), drops the trailing terminator byte, then
// runs main over what remains to recover the textual entry stream before
// handing it to the scanner.
func Decode(wire []byte, main, cid *stream.Stream) []Entry {
	// Finish burns one cid call building the terminator's own value before
	// it ever starts the full-buffer XOR pass; replay that call here so the
	// reversal loop below lines up with the same "successive cidStream()"
	// sequence Finish used, not one call behind it.
	cid.Next(false)

	plain := make([]byte, len(wire))
	for i, b := range wire {
		plain[i] = b ^ cid.Next(false)
	}

	if len(plain) > 0 {
		plain = plain[:len(plain)-1]
	}

	for i, b := range plain {
		plain[i] = b ^ main.Next(false)
	}

	return scan(string(plain))
}

type scanState int

const (
	stateSeekStart scanState = iota
	stateKey
	stateColon
	stateValue
)

// scan implements the decoder's relaxed state machine: SEEK_START -> KEY ->
// COLON -> VALUE -> SEEK_START. Malformed tails are skipped
// character-by-character without aborting the scan, per spec §4.6/§7.
func scan(text string) []Entry {
	var entries []Entry
	state := stateSeekStart
	i := 0
	n := len(text)

	var key string

	for i < n {
		switch state {
		case stateSeekStart:
			c := text[i]
			if c == '{' || c == ',' {
				i++
				state = stateKey
				continue
			}
			i++

		case stateKey:
			if text[i] != '"' {
				// Not a valid key start; give up on this entry and look
				// for the next one.
				state = stateSeekStart
				i++
				continue
			}
			s, next, ok := scanQuotedString(text, i)
			if !ok {
				state = stateSeekStart
				i++
				continue
			}
			key = s
			i = next
			state = stateColon

		case stateColon:
			if text[i] != ':' {
				state = stateSeekStart
				i++
				continue
			}
			i++
			state = stateValue

		case stateValue:
			v, next, ok := scanValue(text, i)
			if !ok {
				state = stateSeekStart
				i++
				continue
			}
			entries = append(entries, Entry{Key: key, Value: v})
			i = next
			state = stateSeekStart
		}
	}

	return entries
}

// scanQuotedString reads a JSON-escaped string starting at text[start]
// (which must be '"') and returns its decoded content, the index just past
// the closing quote, and whether a closing quote was found at all. An
// unterminated string is tolerated: it consumes to the end of text and
// reports ok=false so the caller can recover.
func scanQuotedString(text string, start int) (string, int, bool) {
	n := len(text)
	i := start + 1
	var out []byte
	for i < n {
		c := text[i]
		if c == '"' {
			return string(out), i + 1, true
		}
		if c == '\\' && i+1 < n {
			i++
			switch text[i] {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '"', '\\', '/':
				out = append(out, text[i])
			default:
				out = append(out, text[i])
			}
			i++
			continue
		}
		out = append(out, c)
		i++
	}
	return string(out), i, false
}

// scanValue reads one value starting at text[start]: a quoted string, a
// nested object/array (captured as balanced text and re-parsed), a number,
// or true/false/null. A balanced nested fragment is surfaced as its raw
// captured substring (Raw) whether or not it parses; an unbalanced one
// yields no value.
func scanValue(text string, start int) (Value, int, bool) {
	if start >= len(text) {
		return Value{}, start, false
	}

	switch c := text[start]; {
	case c == '"':
		s, next, ok := scanQuotedString(text, start)
		if !ok {
			return Value{}, next, false
		}
		return String(s), next, true

	case c == '{' || c == '[':
		frag, next, ok := scanBalanced(text, start)
		if !ok {
			return Value{}, next, false
		}
		// Re-parse with the canonical JSON parser per §4.6. A syntactically
		// malformed fragment still surfaces as Raw — map key order isn't
		// stable across an unmarshal/remarshal round trip, so on success
		// the original captured substring is kept verbatim rather than
		// reserialised.
		var anyVal any
		if err := json.Unmarshal([]byte(frag), &anyVal); err != nil {
			return RawJSON(frag), next, true
		}
		return RawJSON(frag), next, true

	case c == 't':
		if hasPrefixAt(text, start, "true") {
			return Bool(true), start + 4, true
		}
		return Value{}, start, false

	case c == 'f':
		if hasPrefixAt(text, start, "false") {
			return Bool(false), start + 5, true
		}
		return Value{}, start, false

	case c == 'n':
		if hasPrefixAt(text, start, "null") {
			return Null(), start + 4, true
		}
		return Value{}, start, false

	case c == '-' || (c >= '0' && c <= '9'):
		return scanNumber(text, start)

	default:
		return Value{}, start, false
	}
}

func hasPrefixAt(text string, start int, lit string) bool {
	return start+len(lit) <= len(text) && text[start:start+len(lit)] == lit
}

// scanBalanced captures a nested {...} or [...] fragment as raw text,
// respecting quoted strings so a brace inside a string doesn't end the
// fragment early. It does not validate JSON grammar; imbalance just runs to
// the end of text.
func scanBalanced(text string, start int) (string, int, bool) {
	open := text[start]
	var close byte
	if open == '{' {
		close = '}'
	} else {
		close = ']'
	}

	depth := 0
	i := start
	n := len(text)
	for i < n {
		c := text[i]
		switch {
		case c == '"':
			_, next, _ := scanQuotedString(text, i)
			i = next
			continue
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[start : i+1], i + 1, true
			}
		}
		i++
	}
	return text[start:i], i, false
}

func scanNumber(text string, start int) (Value, int, bool) {
	n := len(text)
	i := start
	if i < n && text[i] == '-' {
		i++
	}
	for i < n && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	isFloat := false
	if i < n && text[i] == '.' {
		isFloat = true
		i++
		for i < n && text[i] >= '0' && text[i] <= '9' {
			i++
		}
	}
	if i < n && (text[i] == 'e' || text[i] == 'E') {
		isFloat = true
		i++
		if i < n && (text[i] == '+' || text[i] == '-') {
			i++
		}
		for i < n && text[i] >= '0' && text[i] <= '9' {
			i++
		}
	}
	if i == start || (i == start+1 && text[start] == '-') {
		return Value{}, start, false
	}

	lit := text[start:i]
	if isFloat {
		var f float64
		if err := json.Unmarshal([]byte(lit), &f); err != nil {
			return Value{}, i, false
		}
		return Float(f), i, true
	}
	var iv int64
	if err := json.Unmarshal([]byte(lit), &iv); err != nil {
		return Value{}, i, false
	}
	return Int(iv), i, true
}
