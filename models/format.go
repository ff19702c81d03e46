package models

// Format describes one of the fixed output canvases. Width and height are
// the authoritative export resolution in pixels; on-screen previews are
// scaled-down views of the same canvas and never change these values.
type Format struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PixelWidth  int     `json:"pixelWidth"`
	PixelHeight int     `json:"pixelHeight"`
	AspectRatio float64 `json:"aspectRatio"`
	Label       string  `json:"label"`
}

// Fixed format ids. Everything else in the system references formats
// through these keys.
const (
	FormatStory  = "story"
	FormatFeed   = "feed"
	FormatA4     = "a4"
	FormatPoster = "poster"
	FormatTV     = "tv"
)

// DefaultFormatID is the canvas the editor opens with and the target for
// legacy (pre-per-format) layout migration.
const DefaultFormatID = FormatStory

var formats = []Format{
	{ID: FormatStory, Name: "Story", PixelWidth: 1080, PixelHeight: 1920, AspectRatio: 9.0 / 16.0, Label: "Story 9:16"},
	{ID: FormatFeed, Name: "Post", PixelWidth: 1080, PixelHeight: 1080, AspectRatio: 1.0, Label: "Post 1:1"},
	{ID: FormatA4, Name: "Cartaz A4", PixelWidth: 2480, PixelHeight: 3508, AspectRatio: 2480.0 / 3508.0, Label: "Cartaz A4"},
	{ID: FormatPoster, Name: "Cartaz Paisagem", PixelWidth: 3508, PixelHeight: 2480, AspectRatio: 3508.0 / 2480.0, Label: "Cartaz Paisagem"},
	{ID: FormatTV, Name: "TV", PixelWidth: 1920, PixelHeight: 1080, AspectRatio: 16.0 / 9.0, Label: "TV 16:9"},
}

// Formats returns the full format registry in display order. The returned
// slice is a copy; callers may not mutate the registry.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// FormatIDs returns the registered format ids in display order.
func FormatIDs() []string {
	ids := make([]string, len(formats))
	for i, f := range formats {
		ids[i] = f.ID
	}
	return ids
}

// FormatByID looks up a format by id. The second return is false when the
// id is not registered.
func FormatByID(id string) (Format, bool) {
	for _, f := range formats {
		if f.ID == id {
			return f, true
		}
	}
	return Format{}, false
}

// IsFormatID reports whether id names a registered format.
func IsFormatID(id string) bool {
	_, ok := FormatByID(id)
	return ok
}
