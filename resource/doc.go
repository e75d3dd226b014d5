// Package resource bounds what reconstruction jobs may consume: bytes held
// by temporary grids, concurrently running jobs, and snapshot IO
// throughput. A nil *Controller imposes no limits.
package resource
