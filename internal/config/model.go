package config

var defaultConfig = Config{
	Windows: []Window{
		{
			Title:  "xsurface",
			Width:  800,
			Height: 600,
		},
	},
}

type Config struct {
	HTTP    HTTP     `json:"http" yaml:"http"`
	Display string   `json:"display" yaml:"display"`
	Windows []Window `json:"windows" yaml:"windows"`
}

type HTTP struct {
	Enable bool   `json:"enable" yaml:"enable"`
	Host   string `json:"host" yaml:"host"`
	Port   int    `json:"port" yaml:"port"`
}

type Window struct {
	UUID         string `json:"uuid" yaml:"uuid"`
	Title        string `json:"title" yaml:"title"`
	X            *int32 `json:"x" yaml:"x"`
	Y            *int32 `json:"y" yaml:"y"`
	Width        uint32 `json:"width" yaml:"width"`
	Height       uint32 `json:"height" yaml:"height"`
	Fullscreen   bool   `json:"fullscreen" yaml:"fullscreen"`
	Undecorated  bool   `json:"undecorated" yaml:"undecorated"`
	Minimized    bool   `json:"minimized" yaml:"minimized"`
	FixedSize    bool   `json:"fixed_size" yaml:"fixed_size"`
	HideCursor   bool   `json:"hide_cursor" yaml:"hide_cursor"`
	RawMice      bool   `json:"raw_mice" yaml:"raw_mice"`
	ZOrder       string `json:"z_order" yaml:"z_order"` // [bottom, normal, top]
	ConfirmClose bool   `json:"confirm_close" yaml:"confirm_close"`

	// Framebuffer requests forwarded to the render context.
	DepthBits     int  `json:"depth_bits" yaml:"depth_bits"`
	ColorBits     int  `json:"color_bits" yaml:"color_bits"`
	AlphaBits     int  `json:"alpha_bits" yaml:"alpha_bits"`
	StencilBits   int  `json:"stencil_bits" yaml:"stencil_bits"`
	SingleBuffer  bool `json:"single_buffer" yaml:"single_buffer"`
	ForceHardware bool `json:"force_hardware" yaml:"force_hardware"`
	ForceSoftware bool `json:"force_software" yaml:"force_software"`
}
