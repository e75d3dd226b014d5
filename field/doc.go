// Package field defines scalar and vector fields: continuous functions of
// position with optional derivative operators.
//
// Only Sample is mandatory. Embedding NoDerivatives2 or NoDerivatives3 gives
// a type zero-valued Gradient, Laplacian, Divergence and Curl, so a field only
// implements the operators it can compute in closed form.
//
// Grids from package grid satisfy these interfaces as well.
package field
