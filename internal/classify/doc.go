// Package classify decides which model entries can be bound.
//
// Classification is pure: it reads entries and returns a Disposition per
// entry plus a Report. It never logs; callers decide how to surface skips.
package classify
