package geovu

import "fmt"

// signature.go computes the batching signature the Renderer Factory uses
// to group features sharing (kind, material signature, clampToGround)
// into one Batched drawable (spec §4.H).

func materialSignature(s *Style) string {
	if s == nil {
		return "default"
	}
	if s.Material != "" {
		return "material:" + s.Material
	}
	return fmt.Sprintf("color:%v:%v", s.Color, s.Outline)
}
