// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the in-memory representation of an XSPEC model
// description file. Entries are produced by the modeldat reader, judged by
// the classifier and rendered by the emitter; none of those stages mutate
// them.
//
// # Core Concepts
//
//   - Entry: one model definition. It carries the model name, the routine in
//     the numerical library that evaluates it, the calling convention that
//     routine uses (Language), the model Category and the ordered parameters.
//
//   - Parameter: one fit parameter with its default, soft and hard limits,
//     units and frozen state. Parameters come in three kinds: basic, switch
//     ($name) and scale (*name).
//
//   - Source: where an entry was read from, used in every error message.
package model
