// Package psdwriter serialises an in-memory layered RGB raster composition
// into Adobe's PSD binary file format.
//
// The package is a one-way writer: it never reads or round-trips PSD files.
// Documents are 8-bit-per-channel RGB only; layer masks, adjustment layers,
// smart objects, text layers, vector shapes, the large-document (PSB)
// variant and files at or above 2 GiB are not supported.
//
// A typical session:
//
//	doc := psdwriter.New(800, 600, psdwriter.Colour{R: 255, G: 255, B: 255})
//	doc.SetResolution(300)
//	doc.AddLayer(pixels, psdwriter.Rect{X: 10, Y: 10, W: 200, H: 100}, "Sticker",
//		true, psdwriter.ChannelOrderRGBA, psdwriter.CompressionRLE)
//	doc.Save("out.psd", false)
package psdwriter
