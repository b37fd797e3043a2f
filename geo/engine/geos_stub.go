//go:build !geos

package engine

import "errors"

// The geos engine needs cgo and libgeos, so default builds leave it out.
func newGEOS() (Engine, error) {
	return nil, errors.New("geos engine not compiled in, rebuild with -tags geos")
}
