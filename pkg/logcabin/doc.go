// Package logcabin holds the log cabin quilt calculator: approximate fabric
// area per color, block size derived from a target quilt size, and a raster
// preview of the quilt with one of six border styles.
//
// Everything here is a pure function of Params. Areas are in square inches
// and lengths in inches; the border factors are rough rules of thumb, not
// cutting instructions.
package logcabin
