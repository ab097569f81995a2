// Package httpserver brings up the HTTP side of the server: it mounts a
// transport next to the health and info endpoints, logs every request, and
// runs an http.Server until its context ends.
package httpserver
