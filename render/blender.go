package render

// BlendMode defines compositing operations
type BlendMode uint8

// BlendAlpha is the zero value so a Stroke without a mode composites normally
const (
	BlendAlpha   BlendMode = iota // Dst = Src*α + Dst*(1-α)
	BlendReplace                  // Dst = Src (opaque overwrite)
	BlendAdd                      // Dst = clamp(Dst + Src*α, 255)
	BlendMax                      // Dst = max(Dst, Src) per channel
	BlendScreen                   // Dst = 1 - (1-Dst)*(1-Src)
)

// apply composites src onto dst with mode and alpha
func (m BlendMode) apply(dst, src RGB, alpha float64) RGB {
	switch m {
	case BlendReplace:
		if alpha <= 0 {
			return dst
		}
		return src
	case BlendAdd:
		return Add(dst, src, alpha)
	case BlendMax:
		return Max(dst, src, alpha)
	case BlendScreen:
		return Screen(dst, src, alpha)
	default:
		return Blend(dst, src, alpha)
	}
}
