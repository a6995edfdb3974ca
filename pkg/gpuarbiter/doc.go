// Package gpuarbiter maintains a GPU inventory and allocation table for
// nodes whose work demands an accelerator. It is independent of the
// workflow engine: nodes call into it around their own body, and it
// serialises admission through a single mutex, matching spec §4.7.
package gpuarbiter
