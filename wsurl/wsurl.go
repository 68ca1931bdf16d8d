package wsurl

// wsurl.go builds and parses WebSocket endpoint URLs. The only logic on top
// of net/url is scheme selection (ws vs wss) and default-port handling.

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// ErrScheme reports a URL whose scheme is neither ws nor wss.
var ErrScheme = errors.New("not a websocket url")

// Endpoint is the decomposed form of a ws/wss URL.
type Endpoint struct {
	Secure bool
	Host   string
	Port   int // 0 means the scheme default (80 for ws, 443 for wss)
	Path   string
	Query  url.Values
}

// defaultPort returns the implied port for the endpoint's scheme.
func (e Endpoint) defaultPort() int {
	if e.Secure {
		return 443
	}
	return 80
}

// Build renders the endpoint as a URL string. The port is elided when it
// matches the scheme default, and the path always starts with a slash.
func (e Endpoint) Build() string {
	host := e.Host
	if e.Port != 0 && e.Port != e.defaultPort() {
		host = net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
	}
	path := e.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := url.URL{
		Scheme: "ws",
		Host:   host,
		Path:   path,
	}
	if e.Secure {
		u.Scheme = "wss"
	}
	if len(e.Query) > 0 {
		u.RawQuery = e.Query.Encode()
	}
	return u.String()
}

// Parse decomposes a ws/wss URL string into an Endpoint.
func Parse(raw string) (Endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, err
	}
	var secure bool
	switch u.Scheme {
	case "ws":
	case "wss":
		secure = true
	default:
		return Endpoint{}, fmt.Errorf("%w: scheme %q", ErrScheme, u.Scheme)
	}
	port := 0
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return Endpoint{}, fmt.Errorf("%w: port %q", ErrScheme, p)
		}
	}
	return Endpoint{
		Secure: secure,
		Host:   u.Hostname(),
		Port:   port,
		Path:   u.Path,
		Query:  u.Query(),
	}, nil
}
