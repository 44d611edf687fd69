// Package export turns a mode-basis archive into the per-segment binary
// files consumed by the fitting simulation.
//
// The archive must hold two arrays: KL with shape (segments, points,
// n_mode) and mask with shape (segments, points). For each segment the
// exporter flattens the (points, n_mode) block column-major, attaches the
// mask row, frames the record and writes M2S<sid>.bin.
//
// Each segment is built by a pure function of its index; the writes are
// sequential and independent, and the first failure aborts the run.
package export
