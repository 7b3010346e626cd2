// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DeviceOption is one device-specific switch and its value. The two parts are
// concatenated verbatim when the argument list is built, so Switch carries any
// "=" the interpreter expects (e.g. Switch "-dJPEGQ=", Value "90").
type DeviceOption struct {
	Switch string `json:"switch" yaml:"switch" mapstructure:"switch"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
}

// String returns the option as a single argument.
func (o DeviceOption) String() string {
	return o.Switch + o.Value
}

// Resolution is the output resolution in dots per inch. X alone sets both
// axes; Y is only used when X is also set. Zero values leave the device
// default in place.
type Resolution struct {
	X int `json:"x,omitempty" yaml:"x,omitempty" mapstructure:"x"`
	Y int `json:"y,omitempty" yaml:"y,omitempty" mapstructure:"y"`
}

// PageRange limits conversion to First..Last (1-based, inclusive). Values
// <= 0 leave the corresponding bound open.
type PageRange struct {
	First int `json:"first,omitempty" yaml:"first,omitempty" mapstructure:"first"`
	Last  int `json:"last,omitempty" yaml:"last,omitempty" mapstructure:"last"`
}

// PageSize forces the output page size in device pixels.
type PageSize struct {
	Width  int `json:"width,omitempty" yaml:"width,omitempty" mapstructure:"width"`
	Height int `json:"height,omitempty" yaml:"height,omitempty" mapstructure:"height"`
}

// Antialiasing levels accepted by -dTextAlphaBits and -dGraphicsAlphaBits.
// Any value <= 0 means "not set".
const (
	AlphaBitsNotSet  = 0
	AlphaBitsLow     = 1
	AlphaBitsMedium  = 2
	AlphaBitsOptimum = 4
)

// FontConfig holds the font lookup switches.
type FontConfig struct {
	// Paths are joined with the OS list separator into -sFONTPATH.
	Paths []string `json:"paths,omitempty" yaml:"paths,omitempty" mapstructure:"paths"`

	// Maps are joined with the OS list separator into -sFONTMAP.
	Maps []string `json:"maps,omitempty" yaml:"maps,omitempty" mapstructure:"maps"`

	DisablePlatformFonts bool   `json:"disable_platform_fonts,omitempty" yaml:"disable_platform_fonts,omitempty" mapstructure:"disable_platform_fonts"`
	DisableFontMap       bool   `json:"disable_font_map,omitempty" yaml:"disable_font_map,omitempty" mapstructure:"disable_font_map"`
	DisablePrecompiled   bool   `json:"disable_precompiled,omitempty" yaml:"disable_precompiled,omitempty" mapstructure:"disable_precompiled"`
	Substitute           string `json:"substitute,omitempty" yaml:"substitute,omitempty" mapstructure:"substitute"`
	FCOFontFile          string `json:"fco_font_file,omitempty" yaml:"fco_font_file,omitempty" mapstructure:"fco_font_file"`
	FAPIFontMap          string `json:"fapi_font_map,omitempty" yaml:"fapi_font_map,omitempty" mapstructure:"fapi_font_map"`
}

// RenderConfig is the configuration surface consumed by the argument builder.
// It is treated as immutable once handed to a conversion.
type RenderConfig struct {
	// Device selects the output device. Required.
	Device Device `json:"device" yaml:"device" mapstructure:"device"`

	// DeviceOptions are emitted in order directly after the device switch.
	DeviceOptions []DeviceOption `json:"device_options,omitempty" yaml:"device_options,omitempty" mapstructure:"device_options"`

	Resolution Resolution `json:"resolution,omitempty" yaml:"resolution,omitempty" mapstructure:"resolution"`
	PageRange  PageRange  `json:"page_range,omitempty" yaml:"page_range,omitempty" mapstructure:"page_range"`

	// TextAlphaBits and GraphicsAlphaBits must be <= 0, 1, 2 or 4.
	TextAlphaBits     int `json:"text_alpha_bits,omitempty" yaml:"text_alpha_bits,omitempty" mapstructure:"text_alpha_bits"`
	GraphicsAlphaBits int `json:"graphics_alpha_bits,omitempty" yaml:"graphics_alpha_bits,omitempty" mapstructure:"graphics_alpha_bits"`

	// JPEGQuality (1-100) is only emitted for the jpeg device.
	JPEGQuality int `json:"jpeg_quality,omitempty" yaml:"jpeg_quality,omitempty" mapstructure:"jpeg_quality"`

	// PageSize overrides PaperSize when both dimensions are positive.
	PageSize   PageSize `json:"page_size,omitempty" yaml:"page_size,omitempty" mapstructure:"page_size"`
	PaperSize  string   `json:"paper_size,omitempty" yaml:"paper_size,omitempty" mapstructure:"paper_size"`
	FixedMedia bool     `json:"fixed_media,omitempty" yaml:"fixed_media,omitempty" mapstructure:"fixed_media"`
	FitPage    bool     `json:"fit_page,omitempty" yaml:"fit_page,omitempty" mapstructure:"fit_page"`

	// RenderingThreads: 0 leaves the interpreter default, a negative value
	// uses one thread per CPU.
	RenderingThreads int `json:"rendering_threads,omitempty" yaml:"rendering_threads,omitempty" mapstructure:"rendering_threads"`

	Fonts FontConfig `json:"fonts,omitempty" yaml:"fonts,omitempty" mapstructure:"fonts"`

	// IncludeDir is added as -I so the interpreter finds its init files there.
	IncludeDir string `json:"include_dir,omitempty" yaml:"include_dir,omitempty" mapstructure:"include_dir"`

	// MultiPage inserts a %d page placeholder into an output path that has none.
	MultiPage bool `json:"multi_page,omitempty" yaml:"multi_page,omitempty" mapstructure:"multi_page"`

	// ExtraArgs are appended after all derived switches, before the output file.
	ExtraArgs []string `json:"extra_args,omitempty" yaml:"extra_args,omitempty" mapstructure:"extra_args"`
}

// EngineConfig locates the native interpreter library and controls how its
// text streams are decoded.
type EngineConfig struct {
	// LibraryPath is an explicit path to the interpreter shared library.
	LibraryPath string `json:"library_path,omitempty" yaml:"library_path,omitempty" mapstructure:"library_path"`

	// LibraryDirs are searched in order for the platform library names.
	LibraryDirs []string `json:"library_dirs,omitempty" yaml:"library_dirs,omitempty" mapstructure:"library_dirs"`

	// TempDir receives the staged copy of each input. Empty uses os.TempDir().
	TempDir string `json:"temp_dir,omitempty" yaml:"temp_dir,omitempty" mapstructure:"temp_dir"`

	// Encoding of the interpreter's stdout/stderr: utf8, cp1252 or auto.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty" mapstructure:"encoding"`
}

// JournalConfig holds settings for the conversion history database.
type JournalConfig struct {
	// Path is the SQLite database file. Empty disables the journal.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error (default info).
	Level string `json:"level,omitempty" yaml:"level,omitempty" mapstructure:"level"`

	// Format is console or json (default console).
	Format string `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format"`
}

// Config groups everything the CLI reads from the config file.
type Config struct {
	Engine  EngineConfig  `json:"engine" yaml:"engine" mapstructure:"engine"`
	Render  RenderConfig  `json:"render" yaml:"render" mapstructure:"render"`
	Journal JournalConfig `json:"journal" yaml:"journal" mapstructure:"journal"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
