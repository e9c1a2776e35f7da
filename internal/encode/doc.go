// Package encode writes rendered frames out as movie files.
//
// A [Writer] is selected by [New] from the output extension:
//
//   - .avi is assembled in process as motion JPEG
//   - .gif is encoded in process with an animated palette
//   - .mp4, .mov, .m4v, .mkv and .webm are streamed to ffmpeg as PNG
//     frames over stdin
//
// # Example
//
//	w, err := encode.New("walk.avi", encode.Options{Width: 1000, Height: 1000, FPS: 20})
//	if err != nil {
//		return err
//	}
//	for _, img := range frames {
//		if err := w.AddFrame(img); err != nil {
//			return err
//		}
//	}
//	return w.Close()
//
// Writers are not safe for concurrent use; frames must be added from a
// single goroutine in playback order.
package encode
