// Copyright ©2024 The MTXMQ Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mtxmq validates and benchmarks the transpose-multiply-accumulate
// kernel used by multiresolution tensor transforms:
//
//	c[i*dimj+j] += sum_k a[k*dimi+i] * b[k*dimj+j]
//
// A run fills a set of aligned buffers from a fixed-seed generator, sweeps
// a grid of dimension triples comparing the optimized kernel in package
// compute against a straightforward reference, and then, if every triple
// matched, times the kernel over four standard suites of shapes with a
// cycle counter from package cycles.
//
// The harness includes:
//   - A deterministic input generator (Generator)
//   - The reference contraction (Reference)
//   - A fail-fast or collect-all correctness sweep (Sweep)
//   - A best-of-N performance harness with anomaly flagging (Harness)
//   - Optional alternate implementations from package blasref
//
// The Driver ties these together the way the mtxmq-bench command runs them.
package mtxmq
