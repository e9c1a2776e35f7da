// Package render draws skeleton frames of a capture as raster images.
//
// A [Renderer] is built once per capture. Construction resolves the
// world box, either from configured view limits or from the data
// bounds padded by five percent, and fixes the [Camera], so every
// frame of a clip shares the same framing and the subject never jumps
// between frames. [Animate] renders a frame range across parallel
// workers and hands the images to an encode writer in playback order.
//
// # Example
//
//	r, err := render.New(cap, cfg)
//	if err != nil {
//		return err
//	}
//	img, err := r.RenderFrame(0)
//	if err != nil {
//		return err
//	}
//	return render.SavePNG(img, "frame.png")
//
// [Renderer.ProjectFrame] and [Renderer.ProjectBox] expose the
// projection pipeline without rasterizing, for front ends that draw
// with their own primitives.
package render
