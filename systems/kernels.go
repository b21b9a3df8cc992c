package systems

import "math"

// Smoothing kernels. Both families are radially symmetric and return exactly
// zero at and beyond the support radius h, so callers never need their own
// cut-off test.

// DensityKernel is the poly6-style density kernel
// W(d²,h) = 4/(π h⁸) · (h² − d²)³ for d² < h².
func DensityKernel(distSq, h float32) float32 {
	h2 := h * h
	if distSq >= h2 {
		return 0
	}
	v := h2 - distSq
	return 4 / (math.Pi * pow8(h)) * v * v * v
}

// DensityKernelDerivative is dW/dd of DensityKernel at distance dist.
func DensityKernelDerivative(dist, h float32) float32 {
	if dist >= h {
		return 0
	}
	v := h*h - dist*dist
	return -24 * dist / (math.Pi * pow8(h)) * v * v
}

// PressureKernel is the spiky-style kernel W(d,h) = 10/(π h⁵) · (h − d)³.
func PressureKernel(dist, h float32) float32 {
	if dist >= h {
		return 0
	}
	v := h - dist
	return 10 / (math.Pi * pow5(h)) * v * v * v
}

// PressureKernelDerivative is W'(d,h) = −30/(π h⁵) · (h − d)².
func PressureKernelDerivative(dist, h float32) float32 {
	if dist >= h {
		return 0
	}
	v := h - dist
	return -30 / (math.Pi * pow5(h)) * v * v
}

// Kernels caches the normalisation constants for one smoothing radius.
// Values are identical to the free functions.
type Kernels struct {
	H  float32
	H2 float32
	d  float32 // 4/(π h⁸)
	dd float32 // -24/(π h⁸)
	p  float32 // 10/(π h⁵)
	pd float32 // -30/(π h⁵)
}

// NewKernels precomputes the kernel constants for radius h.
func NewKernels(h float32) Kernels {
	h8 := pow8(h)
	h5 := pow5(h)
	return Kernels{
		H:  h,
		H2: h * h,
		d:  4 / (math.Pi * h8),
		dd: -24 / (math.Pi * h8),
		p:  10 / (math.Pi * h5),
		pd: -30 / (math.Pi * h5),
	}
}

// Density evaluates DensityKernel.
func (k Kernels) Density(distSq float32) float32 {
	if distSq >= k.H2 {
		return 0
	}
	v := k.H2 - distSq
	return k.d * v * v * v
}

// DensityDerivative evaluates DensityKernelDerivative.
func (k Kernels) DensityDerivative(dist float32) float32 {
	if dist >= k.H {
		return 0
	}
	v := k.H2 - dist*dist
	return k.dd * dist * v * v
}

// Pressure evaluates PressureKernel.
func (k Kernels) Pressure(dist float32) float32 {
	if dist >= k.H {
		return 0
	}
	v := k.H - dist
	return k.p * v * v * v
}

// PressureDerivative evaluates PressureKernelDerivative.
func (k Kernels) PressureDerivative(dist float32) float32 {
	if dist >= k.H {
		return 0
	}
	v := k.H - dist
	return k.pd * v * v
}

func pow5(h float32) float32 {
	h2 := h * h
	return h2 * h2 * h
}

func pow8(h float32) float32 {
	h2 := h * h
	h4 := h2 * h2
	return h4 * h4
}
