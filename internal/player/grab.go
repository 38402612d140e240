package player

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// encodeImage turns a rendered image into the {format, data} response shape.
// Everything is encoded as PNG regardless of the reported format; the format
// field only tells the driver how to name the file.
func (p *Player) encodeImage(img image.Image, format string) schemas.Bag {
	if format == "" {
		format = p.cfg.GrabFormat
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return schemas.Error(schemas.ErrInvalidCommand,
			fmt.Sprintf("Unable to encode the image: %s", err))
	}
	return schemas.Bag{
		"format": format,
		"data":   base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
}

func (p *Player) grab(cmd schemas.Bag) schemas.Bag {
	var img image.Image
	if cmd.Has("oid") {
		// Grab a single widget.
		ctx := locate[toolkit.Widget](p, cmd, "oid", "Widget")
		if ctx.hasError() {
			return ctx.err
		}
		img = ctx.val.Grab()
	} else {
		// Grab the whole screen.
		img = p.app.GrabScreen()
	}
	return p.encodeImage(img, cmd.String("format"))
}

func (p *Player) grabGraphicsView(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.GraphicsView](p, cmd, "oid", "GraphicsView")
	if ctx.hasError() {
		return ctx.err
	}
	scene := ctx.val.Scene()
	if scene == nil {
		return schemas.Error(schemas.ErrMissingGItem,
			fmt.Sprintf("The view (id:%d) has no scene to render", ctx.id))
	}
	return p.encodeImage(scene.Render(), cmd.String("format"))
}
