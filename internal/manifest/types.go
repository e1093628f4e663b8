package manifest

// Filename is the manifest written at the root of a batch output directory.
const Filename = "phoenyx.manifest.json"

// Manifest is the top-level output of a phoenyx batch run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Preset      string           `json:"preset"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures the parameters a batch was rendered with.
type BuildInfo struct {
	Workers int      `json:"workers"`
	Format  string   `json:"format"`
	Quality int      `json:"quality"`
	Filter  string   `json:"filter,omitempty"` // CSS filter() equivalent of the basic sliders
	Effects []string `json:"effects,omitempty"`
	Seed    uint64   `json:"seed,omitempty"`
}

// Asset describes a single source image and its rendered outputs.
type Asset struct {
	Original    OriginalInfo `json:"original"`
	AspectRatio float64      `json:"aspect_ratio"` // width / height of the render
	Palette     []string     `json:"palette"`      // dominant colors, #RRGGBB
	TextColor   string       `json:"text_color,omitempty"`
	Variants    []Variant    `json:"variants"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
	Hash     string `json:"hash,omitempty"` // xxhash64 of the source file
}

// Variant roles.
const (
	RoleFull  = "full"
	RoleThumb = "thumb"
)

// Variant is one encoded output of an asset.
type Variant struct {
	Role   string `json:"role"`
	Format string `json:"format"` // "png", "jpeg", "bmp", "tiff"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates batch metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalVariants    int   `json:"total_variants"`
	Failed           int   `json:"failed,omitempty"` // sources that could not be processed
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
