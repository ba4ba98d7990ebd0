// Package workflow implements Temporal workflow definitions for climlab.
//
// Workflows coordinate diagnostics over batches of fields. They validate the
// request, fan the per-field work out to activities and assemble a report.
//
// Workflows must stay deterministic: no random numbers, wall-clock reads or
// external I/O. Such operations belong in activities.
package workflow
