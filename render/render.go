package render

import (
	"errors"
	"fmt"

	"github.com/tsawler/ofd/internal/logging"
	"github.com/tsawler/ofd/model"
	"github.com/tsawler/ofd/resource"
)

// Renderer drives one canvas from one document's content. It holds no
// mutable state of its own; all graphics state lives in the canvas.
type Renderer struct {
	canvas   Canvas
	resolver *resource.Resolver
}

// NewRenderer pairs a canvas with the resolver for the document being
// rendered.
func NewRenderer(c Canvas, r *resource.Resolver) *Renderer {
	return &Renderer{canvas: c, resolver: r}
}

// RenderPage renders every layer of the page in document order.
func (r *Renderer) RenderPage(page *model.Page) error {
	for _, layer := range page.Layers {
		if err := r.RenderEvents(layer.Events); err != nil {
			return err
		}
	}
	return nil
}

// RenderEvents renders a slice of events in order, aborting on the
// first failure.
func (r *Renderer) RenderEvents(events []model.Event) error {
	for _, ev := range events {
		if err := r.renderEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderEvent(ev model.Event) error {
	logging.Logger().Debug("render: event", "type", ev.Type().String())

	switch v := ev.(type) {
	case *model.PathObject:
		return r.renderPath(v)
	case *model.TextObject:
		return r.renderText(v)
	case *model.ImageObject:
		return r.renderImage(v)
	case *model.PageBlock:
		return r.RenderEvents(v.Events)
	default:
		return fmt.Errorf("render: unhandled event type %T", ev)
	}
}

// scoped runs fn between Save and Restore. The pair stays balanced on
// every exit path and a Restore failure is joined into the result, never
// swallowed.
func (r *Renderer) scoped(fn func() error) error {
	if err := r.canvas.Save(); err != nil {
		return err
	}
	err := fn()
	if rerr := r.canvas.Restore(); rerr != nil {
		return errors.Join(err, rerr)
	}
	return err
}

// renderPath strokes the boundary rectangle outline. The interior path
// geometry is not modeled; the boundary box approximation is the
// rendering contract for paths.
func (r *Renderer) renderPath(p *model.PathObject) error {
	return r.scoped(func() error {
		box := p.Boundary.ToPixel()

		r.canvas.SetStrokeColor(p.Stroke)
		r.canvas.SetLineWidth(model.MMToPx(p.LineWidth))

		// Clockwise from the top-left corner.
		r.canvas.MoveTo(box.X, box.Y)
		r.canvas.LineTo(box.Right(), box.Y)
		r.canvas.LineTo(box.Right(), box.Bottom())
		r.canvas.LineTo(box.X, box.Bottom())
		r.canvas.ClosePath()

		return r.canvas.Stroke()
	})
}

func (r *Renderer) renderText(t *model.TextObject) error {
	return r.scoped(func() error {
		ref := r.resolver.ResolveFontFace(t.FontID)
		r.canvas.SetFont(ref, model.MMToPx(t.Size))

		var fill model.Color // black
		if t.Fill != nil {
			fill = *t.Fill
		}
		r.canvas.SetFillColor(fill)

		box := t.Boundary.ToPixel()
		r.canvas.Translate(box.X+model.MMToPx(t.Code.X), box.Y+model.MMToPx(t.Code.Y))

		// The CTM composes after the origin translation so its
		// coefficients act in the object's local frame.
		if t.CTM != nil {
			r.canvas.Concat(*t.CTM)
		}

		return r.canvas.DrawText(0, 0, t.Code.Content)
	})
}

func (r *Renderer) renderImage(img *model.ImageObject) error {
	return r.scoped(func() error {
		surface, err := r.resolver.ResolveImageSurface(img.ResourceID)
		if err != nil {
			// An id absent from the table renders nothing. A present id
			// whose bytes are missing or undecodable aborts the walk.
			if errors.Is(err, resource.ErrResourceNotFound) {
				logging.Logger().Debug("render: image resource unknown, skipping",
					"id", img.ResourceID)
				return nil
			}
			return err
		}
		return r.canvas.DrawImage(surface, img.Boundary.ToPixel())
	})
}
