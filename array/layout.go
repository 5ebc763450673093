package array

// ShapesEqual reports whether a and b have the same rank and extents.
// Strides, dtype and space are not compared.
func ShapesEqual(a, b *Descriptor) bool {
	if a.NDim != b.NDim {
		return false
	}
	for d := 0; d < a.NDim; d++ {
		if a.Shape[d] != b.Shape[d] {
			return false
		}
	}
	return true
}

// CapacityBytes is the byte span of the view, strides[0]*shape[0]. It
// assumes the outermost stride is the largest; other orderings give a
// meaningless result.
func CapacityBytes(a *Descriptor) int64 {
	return a.Strides[0] * a.Shape[0]
}

// IsContiguous reports whether the logical footprint (element size times
// element count) fills the capacity exactly, i.e. there is no padding.
func IsContiguous(a *Descriptor) bool {
	logical := int64(a.DType.NByte())
	for d := 0; d < a.NDim; d++ {
		logical *= a.Shape[d]
	}
	return logical == CapacityBytes(a)
}

// NumContiguousElements is CapacityBytes / element size. Only meaningful
// for contiguous descriptors, which is not checked. Sub-byte dtypes have a
// zero byte size and divide by zero.
func NumContiguousElements(a *Descriptor) int64 {
	return CapacityBytes(a) / int64(a.DType.NByte())
}

// SqueezeContiguousDims writes to out a copy of in where every run of
// dimensions with no padding between them is merged into one dimension.
// in and out may be the same descriptor.
//
// Dimension i merges into i+1 when strides[i] == strides[i+1]*shape[i+1].
// The innermost dimension is always emitted; nothing beyond NDim is read.
func SqueezeContiguousDims(in, out *Descriptor) {
	src := *in
	*out = src
	odim := 0
	osize := int64(1)
	for idim := 0; idim < src.NDim; idim++ {
		osize *= src.Shape[idim]
		last := idim == src.NDim-1
		if last || src.Strides[idim] != src.Strides[idim+1]*src.Shape[idim+1] {
			out.Shape[odim] = osize
			out.Strides[odim] = src.Strides[idim]
			osize = 1
			odim++
		}
	}
	for i := odim; i < MaxDims; i++ {
		out.Shape[i] = 0
		out.Strides[i] = 0
	}
	out.NDim = odim
}
