package usecase

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	lzstring "github.com/daku10/go-lz-string"
	"github.com/valyala/bytebufferpool"
)

const lineupPayloadSeparator = "|"

// LineupSelection is one decoded (player id, salary) pair.
type LineupSelection struct {
	PlayerID string
	Salary   int
}

// DecodedLineup is the transient result of decoding one submission
// payload. Decoder names which strategy in the chain succeeded.
type DecodedLineup struct {
	Week       int
	Decoder    string
	Selections []LineupSelection
}

func (d DecodedLineup) PlayerIDs() []string {
	ids := make([]string, 0, len(d.Selections))
	for _, sel := range d.Selections {
		ids = append(ids, sel.PlayerID)
	}
	return ids
}

type decodeStatus int

const (
	decodeOK decodeStatus = iota
	decodeMismatch
	decodeCorrupt
)

// payloadDecoder is one named strategy in the decode chain. The chain
// short-circuits on the first decoder reporting decodeOK; mismatch and
// corrupt both mean "try the next one".
type payloadDecoder struct {
	name   string
	decode func(payload string) (string, decodeStatus)
}

var lineupDecoders = []payloadDecoder{
	{name: "plaintext-base64", decode: decodePlaintextBase64},
	{name: "lzstring-base64", decode: decodeLZStringBase64},
	{name: "deflate-base64", decode: decodeDeflateBase64},
}

// DecodeLineupPayload decodes a `week|payload` submission string. The
// payload half runs through the decoder chain; exhausting the chain
// returns ErrUndecodable and never panics, leaving the fail-open call
// to the admission layer. A payload that decodes cleanly but names no
// players is an empty lineup, not an undecodable one.
func DecodeLineupPayload(raw string) (DecodedLineup, error) {
	weekPart, payload, found := strings.Cut(raw, lineupPayloadSeparator)
	if !found {
		return DecodedLineup{}, fmt.Errorf("%w: missing week separator", ErrUndecodable)
	}

	week, err := strconv.Atoi(strings.TrimSpace(weekPart))
	if err != nil || week < 1 {
		return DecodedLineup{}, fmt.Errorf("%w: bad week %q", ErrUndecodable, weekPart)
	}

	for _, dec := range lineupDecoders {
		text, status := dec.decode(payload)
		if status != decodeOK {
			continue
		}
		selections := parseLineupText(text)
		if len(selections) == 0 && !printableText([]byte(text)) {
			// Unreadable output with no ids means the decoder
			// misfired on someone else's format.
			continue
		}
		return DecodedLineup{
			Week:       week,
			Decoder:    dec.name,
			Selections: selections,
		}, nil
	}

	return DecodedLineup{}, fmt.Errorf("%w: all decoders exhausted", ErrUndecodable)
}

// EncodeLineupPayload builds the canonical `week|payload` form: id:salary
// pairs comma-joined, base64 encoded with the standard alphabet.
func EncodeLineupPayload(week int, selections []LineupSelection) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, sel := range selections {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.WriteString(sel.PlayerID)
		_ = buf.WriteByte(':')
		_, _ = buf.WriteString(strconv.Itoa(sel.Salary))
	}

	return strconv.Itoa(week) + lineupPayloadSeparator +
		base64.StdEncoding.EncodeToString(buf.Bytes())
}

// decodeBase64Padded pads the payload to a multiple of four and tries
// the standard alphabet, then the URL-safe one.
func decodeBase64Padded(payload string) ([]byte, bool) {
	padded := payload
	if rem := len(padded) % 4; rem != 0 {
		padded += strings.Repeat("=", 4-rem)
	}

	if raw, err := base64.StdEncoding.DecodeString(padded); err == nil {
		return raw, true
	}
	if raw, err := base64.URLEncoding.DecodeString(padded); err == nil {
		return raw, true
	}
	return nil, false
}

func decodePlaintextBase64(payload string) (string, decodeStatus) {
	raw, ok := decodeBase64Padded(payload)
	if !ok {
		return "", decodeMismatch
	}
	if !utf8.Valid(raw) || !printableText(raw) {
		return "", decodeMismatch
	}
	return string(raw), decodeOK
}

// decodeLZStringBase64 runs the short-string decompressor against the
// original unpadded payload, retrying with the standard alphabet
// substituted back in when the payload arrived URL-safe.
func decodeLZStringBase64(payload string) (string, decodeStatus) {
	if text, err := lzstring.DecompressFromBase64(payload); err == nil && text != "" {
		return text, decodeOK
	}

	swapped := strings.NewReplacer("-", "+", "_", "/").Replace(payload)
	if swapped != payload {
		if text, err := lzstring.DecompressFromBase64(swapped); err == nil && text != "" {
			return text, decodeOK
		}
	}

	return "", decodeCorrupt
}

func decodeDeflateBase64(payload string) (string, decodeStatus) {
	raw, ok := decodeBase64Padded(payload)
	if !ok {
		return "", decodeMismatch
	}

	if text, err := inflate(raw, true); err == nil {
		return text, decodeOK
	}
	if text, err := inflate(raw, false); err == nil {
		return text, decodeOK
	}
	return "", decodeCorrupt
}

func inflate(raw []byte, zlibWrapped bool) (string, error) {
	var reader io.ReadCloser
	var err error
	if zlibWrapped {
		reader, err = zlib.NewReader(bytes.NewReader(raw))
	} else {
		reader = flate.NewReader(bytes.NewReader(raw))
	}
	if err != nil {
		return "", err
	}
	defer func() { _ = reader.Close() }()

	out, err := io.ReadAll(io.LimitReader(reader, 1<<20))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("inflated payload is not text")
	}
	return string(out), nil
}

// parseLineupText turns decoded text into ordered selections: an
// optional leading `username:` prefix is stripped, the rest splits on
// commas into id:salary or id-salary pairs, and only numeric ids are
// kept.
func parseLineupText(text string) []LineupSelection {
	text = stripUsernamePrefix(strings.TrimSpace(text))

	var selections []LineupSelection
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, value := splitSelectionPair(part)
		if !numericID(id) {
			continue
		}

		salary := 0
		if value != "" {
			if parsed, err := strconv.Atoi(value); err == nil {
				salary = parsed
			}
		}
		selections = append(selections, LineupSelection{PlayerID: id, Salary: salary})
	}

	return selections
}

// stripUsernamePrefix drops a leading run of letters followed by a
// colon. Digits before the colon mean the token is already an id pair.
func stripUsernamePrefix(text string) string {
	idx := strings.Index(text, ":")
	if idx <= 0 {
		return text
	}
	for _, r := range text[:idx] {
		if !unicode.IsLetter(r) {
			return text
		}
	}
	return text[idx+1:]
}

func splitSelectionPair(part string) (id, value string) {
	if i := strings.IndexAny(part, ":-"); i >= 0 {
		return part[:i], part[i+1:]
	}
	return part, ""
}

func numericID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func printableText(raw []byte) bool {
	for _, r := range string(raw) {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) || r == utf8.RuneError {
			return false
		}
	}
	return true
}
