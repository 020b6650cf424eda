package http

import (
	"net"
	"net/http"
	"strings"
)

const (
	headerRequestID      = "x-request-id"
	headerContentType    = "content-type"
	headerForwardedFor   = "x-forwarded-for"
	headerRealIP         = "x-real-ip"
	contentTypeJSON      = "application/json"
	cookieLocation       = "location"
	paramLocation        = "location"
	paramDefaultLocation = "default_location"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

// clientIP is the first x-forwarded-for hop, else x-real-ip, else the peer address.
func clientIP(r *http.Request) string {
	ip := r.Header.Get(headerForwardedFor)
	if ip == "" {
		ip = r.Header.Get(headerRealIP)
	}
	if ip == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return r.RemoteAddr
		}
		return host
	}
	first, _, _ := strings.Cut(ip, ",")
	return strings.TrimSpace(first)
}

// locationCookie is the location remembered by the browser, or "".
func locationCookie(r *http.Request) string {
	c, err := r.Cookie(cookieLocation)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}
