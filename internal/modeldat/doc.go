// Package modeldat reads XSPEC model description files (model.dat,
// lmodel.dat) into model.Entry values.
//
// A file is a sequence of records. Each record starts with a header line
//
//	name npars elo ehi routine type flag [flag] [initString]
//
// followed by exactly npars non-blank parameter lines. Blank lines are
// ignored everywhere. Additive models gain an implicit trailing norm
// parameter that is not written in the file.
//
// The Reader is lazy: Next and All parse one record at a time, so a
// malformed record is reported with its line number as soon as it is
// reached.
package modeldat
