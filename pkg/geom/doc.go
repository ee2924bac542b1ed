// Package geom provides the numeric substrate for the B-rep pipeline:
// affine placement transforms, axis-aligned bounding boxes, parametric
// surface and curve evaluation, implicit volume fields, and the adaptive
// curve sampler used for edge polylines.
package geom
