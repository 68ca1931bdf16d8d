package sdp

// sdp.go handles SDP at the textual level only: splitting a description into
// its session part and ordered media sections, exposing attributes, and
// serializing back with CRLF line endings. It does not interpret WebRTC
// semantics; unknown lines are carried through verbatim so a parse/serialize
// round-trip is loss-free.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformed reports SDP text that violates the line grammar.
	ErrMalformed = errors.New("malformed sdp")
)

// Attribute is one a= line; Value is empty for flag attributes like
// "a=recvonly".
type Attribute struct {
	Name  string
	Value string
}

// RTPMap is the decoded form of "a=rtpmap:<pt> <codec>/<clock>[/<channels>]".
type RTPMap struct {
	PayloadType int
	Codec       string
	ClockRate   int
	Channels    int
}

// Media is one m= section and everything up to the next m= line.
type Media struct {
	Type    string   // audio, video, application
	Port    int
	Proto   string   // e.g. UDP/TLS/RTP/SAVPF
	Formats []string // payload type identifiers, in declaration order

	// Lines carries non-attribute lines (c=, b=, ...) verbatim, in order.
	Lines      []string
	Attributes []Attribute
}

// Session is the parsed description: the v/o/s header, remaining
// session-level lines verbatim, session attributes, and media sections.
type Session struct {
	Version int
	Origin  string
	Name    string

	Lines      []string
	Attributes []Attribute
	Media      []*Media
}

// Parse splits raw SDP text into a Session. Lines may be separated by CRLF
// or bare LF; blank trailing lines are ignored. The description must start
// with a v= line and every line must follow the "x=value" grammar.
func Parse(raw string) (*Session, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	s := &Session{}
	var cur *Media
	started := false

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		if len(line) < 2 || line[1] != '=' {
			return nil, fmt.Errorf("%w: line %d %q", ErrMalformed, i+1, line)
		}
		typ, value := line[0], line[2:]
		if !started {
			if typ != 'v' {
				return nil, fmt.Errorf("%w: description must start with v=, got %q", ErrMalformed, line)
			}
			version, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: bad version %q", ErrMalformed, value)
			}
			s.Version = version
			started = true
			continue
		}

		switch typ {
		case 'o':
			if cur == nil {
				s.Origin = value
			} else {
				cur.Lines = append(cur.Lines, line)
			}
		case 's':
			if cur == nil {
				s.Name = value
			} else {
				cur.Lines = append(cur.Lines, line)
			}
		case 'a':
			attr := parseAttribute(value)
			if cur == nil {
				s.Attributes = append(s.Attributes, attr)
			} else {
				cur.Attributes = append(cur.Attributes, attr)
			}
		case 'm':
			m, err := parseMediaLine(value)
			if err != nil {
				return nil, err
			}
			s.Media = append(s.Media, m)
			cur = m
		default:
			if cur == nil {
				s.Lines = append(s.Lines, line)
			} else {
				cur.Lines = append(cur.Lines, line)
			}
		}
	}
	if !started {
		return nil, fmt.Errorf("%w: empty description", ErrMalformed)
	}
	return s, nil
}

func parseAttribute(value string) Attribute {
	if i := strings.IndexByte(value, ':'); i >= 0 {
		return Attribute{Name: value[:i], Value: value[i+1:]}
	}
	return Attribute{Name: value}
}

// parseMediaLine decodes "m=<type> <port> <proto> <fmt> ...".
func parseMediaLine(value string) (*Media, error) {
	fields := strings.Fields(value)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: m=%s", ErrMalformed, value)
	}
	port, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: media port %q", ErrMalformed, fields[1])
	}
	return &Media{
		Type:    fields[0],
		Port:    port,
		Proto:   fields[2],
		Formats: fields[3:],
	}, nil
}

// Attr returns the first session-level attribute with the given name.
func (s *Session) Attr(name string) (string, bool) {
	return findAttr(s.Attributes, name)
}

// Attr returns the first attribute of this media section with the given name.
func (m *Media) Attr(name string) (string, bool) {
	return findAttr(m.Attributes, name)
}

func findAttr(attrs []Attribute, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// RTPMaps decodes every well-formed a=rtpmap attribute of the section, in
// order. Malformed rtpmap values are skipped rather than failing the whole
// section.
func (m *Media) RTPMaps() []RTPMap {
	var maps []RTPMap
	for _, a := range m.Attributes {
		if a.Name != "rtpmap" {
			continue
		}
		rm, err := parseRTPMap(a.Value)
		if err != nil {
			continue
		}
		maps = append(maps, rm)
	}
	return maps
}

func parseRTPMap(value string) (RTPMap, error) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return RTPMap{}, fmt.Errorf("%w: rtpmap %q", ErrMalformed, value)
	}
	pt, err := strconv.Atoi(fields[0])
	if err != nil {
		return RTPMap{}, fmt.Errorf("%w: rtpmap payload type %q", ErrMalformed, fields[0])
	}
	parts := strings.Split(fields[1], "/")
	if len(parts) < 2 || len(parts) > 3 {
		return RTPMap{}, fmt.Errorf("%w: rtpmap encoding %q", ErrMalformed, fields[1])
	}
	clock, err := strconv.Atoi(parts[1])
	if err != nil {
		return RTPMap{}, fmt.Errorf("%w: rtpmap clock %q", ErrMalformed, parts[1])
	}
	rm := RTPMap{PayloadType: pt, Codec: parts[0], ClockRate: clock}
	if len(parts) == 3 {
		ch, err := strconv.Atoi(parts[2])
		if err != nil {
			return RTPMap{}, fmt.Errorf("%w: rtpmap channels %q", ErrMalformed, parts[2])
		}
		rm.Channels = ch
	}
	return rm, nil
}

// String re-serializes the description with CRLF line endings, preserving
// the order lines were parsed in.
func (s *Session) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "v=%d\r\n", s.Version)
	if s.Origin != "" {
		fmt.Fprintf(&b, "o=%s\r\n", s.Origin)
	}
	if s.Name != "" {
		fmt.Fprintf(&b, "s=%s\r\n", s.Name)
	}
	for _, line := range s.Lines {
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	writeAttrs(&b, s.Attributes)
	for _, m := range s.Media {
		fmt.Fprintf(&b, "m=%s %d %s", m.Type, m.Port, m.Proto)
		for _, f := range m.Formats {
			b.WriteByte(' ')
			b.WriteString(f)
		}
		b.WriteString("\r\n")
		for _, line := range m.Lines {
			b.WriteString(line)
			b.WriteString("\r\n")
		}
		writeAttrs(&b, m.Attributes)
	}
	return b.String()
}

func writeAttrs(b *strings.Builder, attrs []Attribute) {
	for _, a := range attrs {
		if a.Value == "" {
			fmt.Fprintf(b, "a=%s\r\n", a.Name)
		} else {
			fmt.Fprintf(b, "a=%s:%s\r\n", a.Name, a.Value)
		}
	}
}
