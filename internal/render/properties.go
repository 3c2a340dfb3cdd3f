// Package render is the rendering-context collaborator consumed by the window
// core. It speaks the GLX extension over the X wire: visual selection, context
// creation and sharing, make-current with the connection's context tag cache,
// and buffer swaps.
package render

import "errors"

var (
	// ErrNoVisual means no visual on the screen satisfies the requested
	// framebuffer properties.
	ErrNoVisual = errors.New("render: no compatible visual")

	// ErrPolicy means the realized context violates the hardware/software
	// renderer policy of the request.
	ErrPolicy = errors.New("render: renderer policy unsatisfied")
)

// Properties describes a framebuffer, either as a request or as realized by
// the server.
type Properties struct {
	RGBA         bool `json:"rgba"`
	DoubleBuffer bool `json:"double_buffer"`
	Stereo       bool `json:"stereo"`
	ColorBits    int  `json:"color_bits"`
	AlphaBits    int  `json:"alpha_bits"`
	DepthBits    int  `json:"depth_bits"`
	StencilBits  int  `json:"stencil_bits"`
	AccumBits    int  `json:"accum_bits"`

	// Renderer policy, meaningful on requests only.
	ForceHardware bool `json:"force_hardware"`
	ForceSoftware bool `json:"force_software"`
}

// Subsumes reports whether a framebuffer with properties p can satisfy a
// request for req. Numeric properties must meet or exceed the request;
// capability flags must be present when requested.
func (p Properties) Subsumes(req Properties) bool {
	if req.RGBA && !p.RGBA {
		return false
	}
	if req.DoubleBuffer && !p.DoubleBuffer {
		return false
	}
	if req.Stereo && !p.Stereo {
		return false
	}
	return p.ColorBits >= req.ColorBits &&
		p.AlphaBits >= req.AlphaBits &&
		p.DepthBits >= req.DepthBits &&
		p.StencilBits >= req.StencilBits &&
		p.AccumBits >= req.AccumBits
}

// VerifyPolicy checks the request's renderer policy against the realized
// context. Direct rendering is the hardware path; an indirect context is
// treated as software.
func (req Properties) VerifyPolicy(direct bool) error {
	if req.ForceHardware && !direct {
		return ErrPolicy
	}
	if req.ForceSoftware && direct {
		return ErrPolicy
	}
	return nil
}
