// Package discovery builds the local device catalog from the vendor
// account at startup.
//
// Each raw vendor device expands into one local device per switch,
// classified by keyword tables and positioned by discovery order. A
// failed or empty listing falls back to a fixed four-device catalog so
// the application never starts without controllable devices.
package discovery
