// Package emit renders accepted model entries into the three fragment
// streams consumed by the extension build:
//
//   - the Python class declarations (<prefix>.py.incl),
//   - the C extern declarations (<prefix>.declare.incl),
//   - the dispatch-table entries (<prefix>.methoddef.incl).
//
// The C-side fragments come from a registry.Convention chosen by the
// entry's calling convention. Every convention is resolved before the first
// fragment is rendered, so an unsupported interface aborts the run with no
// partial output.
package emit
