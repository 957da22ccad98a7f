// Package layout computes the sunburst partition of a symbol tree.
//
// A partition assigns every node of a subtree an angular span [X, X+DX) and a
// radial band [Y, Y+DY). The subtree root always spans the full circle, each
// child gets a contiguous share of its parent's span proportional to its
// value, and siblings keep their discovery order.
//
// Radial bands are measured in squared-radius units: with R the chart radius
// and h the subtree height, every depth gets a band of R²/(h+1). Drawing code
// takes the square root (InnerRadius/OuterRadius), so rings further out are
// thinner and every ring covers the same area.
//
// A partition is never updated in place. Zooming computes a fresh one with
// the zoomed node as root.
package layout
