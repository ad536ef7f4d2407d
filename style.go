package dockgui

// Style holds the colors used for dock hosts, tab bars, splitters and
// drop previews. Metrics live in Config.
type Style struct {
	WindowBg          uint32
	TitleBg           uint32
	TitleBgActive     uint32
	Tab               uint32
	TabHovered        uint32
	TabActive         uint32
	TabUnfocused      uint32
	Separator         uint32
	SeparatorHovered  uint32
	SeparatorActive   uint32
	DockingPreview    uint32
	DockingPreviewBg  uint32
	DockingEmptyBg    uint32
	DockingDropTarget uint32
}

// DefaultStyle returns the default dark palette.
func DefaultStyle() Style {
	return Style{
		WindowBg:          RGBA(15, 15, 15, 240),
		TitleBg:           RGBA(10, 10, 10, 255),
		TitleBgActive:     RGBA(41, 74, 122, 255),
		Tab:               RGBA(46, 89, 148, 220),
		TabHovered:        RGBA(66, 150, 250, 204),
		TabActive:         RGBA(51, 105, 173, 255),
		TabUnfocused:      RGBA(17, 26, 38, 248),
		Separator:         RGBA(110, 110, 128, 128),
		SeparatorHovered:  RGBA(26, 102, 191, 199),
		SeparatorActive:   RGBA(26, 102, 191, 255),
		DockingPreview:    RGBA(66, 150, 250, 178),
		DockingPreviewBg:  RGBA(66, 150, 250, 60),
		DockingEmptyBg:    RGBA(51, 51, 51, 255),
		DockingDropTarget: RGBA(255, 255, 255, 200),
	}
}
