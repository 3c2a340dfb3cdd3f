package render

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/glx"
	"github.com/jezek/xgb/xproto"
)

// Visual classes, as reported in a GLX visual config record. Same numbering as
// the core protocol's VisualClass.
const (
	VisualStaticGray  = 0
	VisualGrayScale   = 1
	VisualStaticColor = 2
	VisualPseudoColor = 3
	VisualTrueColor   = 4
	VisualDirectColor = 5
)

// VisualConfig is one decoded record from a GLXGetVisualConfigs reply.
type VisualConfig struct {
	VisualID     xproto.Visualid
	Class        int
	RGBA         bool
	RedBits      int
	GreenBits    int
	BlueBits     int
	AlphaBits    int
	AccumBits    int
	DoubleBuffer bool
	Stereo       bool
	BufferSize   int
	DepthBits    int
	StencilBits  int
}

// Canonical property order of a visual config record, per the GLX protocol.
const (
	cfgVisual = iota
	cfgClass
	cfgRGBA
	cfgRedSize
	cfgGreenSize
	cfgBlueSize
	cfgAlphaSize
	cfgAccumRedSize
	cfgAccumGreenSize
	cfgAccumBlueSize
	cfgAccumAlphaSize
	cfgDoubleBuffer
	cfgStereo
	cfgBufferSize
	cfgDepthSize
	cfgStencilSize
	cfgAuxBuffers
	cfgLevel

	cfgCoreProperties = 18
)

// VisualConfigs fetches and decodes every GLX visual config on the screen.
func VisualConfigs(conn *xgb.Conn, screen int) ([]VisualConfig, error) {
	reply, err := glx.GetVisualConfigs(conn, uint32(screen)).Reply()
	if err != nil {
		return nil, fmt.Errorf("get visual configs: %w", err)
	}

	stride := int(reply.NumProperties)
	if stride < cfgCoreProperties {
		return nil, fmt.Errorf("visual config stride %d too short", stride)
	}

	var configs []VisualConfig
	props := reply.PropertyList
	for i := 0; i+stride <= len(props); i += stride {
		rec := props[i : i+stride]
		configs = append(configs, VisualConfig{
			VisualID:     xproto.Visualid(rec[cfgVisual]),
			Class:        int(rec[cfgClass]),
			RGBA:         rec[cfgRGBA] != 0,
			RedBits:      int(rec[cfgRedSize]),
			GreenBits:    int(rec[cfgGreenSize]),
			BlueBits:     int(rec[cfgBlueSize]),
			AlphaBits:    int(rec[cfgAlphaSize]),
			AccumBits:    int(rec[cfgAccumRedSize]),
			DoubleBuffer: rec[cfgDoubleBuffer] != 0,
			Stereo:       rec[cfgStereo] != 0,
			BufferSize:   int(rec[cfgBufferSize]),
			DepthBits:    int(rec[cfgDepthSize]),
			StencilBits:  int(rec[cfgStencilSize]),
		})
	}
	return configs, nil
}

// Properties reports the framebuffer properties a visual config realizes.
func (v VisualConfig) Properties() Properties {
	return Properties{
		RGBA:         v.RGBA,
		DoubleBuffer: v.DoubleBuffer,
		Stereo:       v.Stereo,
		ColorBits:    v.RedBits + v.GreenBits + v.BlueBits,
		AlphaBits:    v.AlphaBits,
		DepthBits:    v.DepthBits,
		StencilBits:  v.StencilBits,
		AccumBits:    v.AccumBits,
	}
}

// ChooseVisual picks the cheapest visual config whose realized properties
// subsume the request.
func ChooseVisual(configs []VisualConfig, req Properties) (VisualConfig, bool) {
	var best VisualConfig
	found := false
	for _, cfg := range configs {
		if !cfg.Properties().Subsumes(req) {
			continue
		}
		if !found || cheaper(cfg, best) {
			best = cfg
			found = true
		}
	}
	return best, found
}

func cheaper(a, b VisualConfig) bool {
	ac := a.BufferSize + a.DepthBits + a.StencilBits + a.AccumBits*4
	bc := b.BufferSize + b.DepthBits + b.StencilBits + b.AccumBits*4
	return ac < bc
}
