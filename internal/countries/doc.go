// Package countries holds the REST Countries record type and the pure
// filter/sort pipeline applied to it, plus the HTTP client that loads the
// collection and its flag images.
package countries
