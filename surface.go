package stage

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageSurface is the PixelSurface for objects drawn by Overlay.Draw. It reads
// the object's own texture, which is what Draw places on screen under the
// object's transform.
type ImageSurface struct{}

// PixelAt returns the texture pixel at local (lx, ly), or nil when the node
// has no texture or the coordinate lies outside it.
func (ImageSurface) PixelAt(node HitNode, lx, ly int) color.Color {
	obj := node.StageObject()
	if obj == nil || obj.Image == nil {
		return nil
	}
	r := image.Rect(lx, ly, lx+1, ly+1)
	if !r.In(obj.Image.Bounds()) {
		return nil
	}
	px := obj.Image.SubImage(r).(*ebiten.Image)
	return px.At(lx, ly)
}

// RGBASurface is a PixelSurface over CPU-side images keyed by object ID.
// Hosts that keep a CPU copy of their textures use it to avoid GPU reads.
type RGBASurface map[string]*image.RGBA

// PixelAt returns the pixel at local (lx, ly) of the node's image, or nil.
func (s RGBASurface) PixelAt(node HitNode, lx, ly int) color.Color {
	obj := node.StageObject()
	if obj == nil {
		return nil
	}
	img, ok := s[obj.ID]
	if !ok || !image.Pt(lx, ly).In(img.Bounds()) {
		return nil
	}
	return img.RGBAAt(lx, ly)
}
