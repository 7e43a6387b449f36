package domain

// Design formats accepted from the template studio
const (
	FormatSocialSquare = "social_square"
	FormatSocialStory  = "social_story"
	FormatBlogFeatured = "blog_featured"
	FormatBannerWide   = "banner_wide"
	FormatCustom       = "custom"
)

// Design item types
const (
	ItemText  = "text"
	ItemImage = "image"
	ItemShape = "shape"
)

// DesignItem is one positioned element of a static design template
type DesignItem struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	FontWeight string  `json:"font_weight,omitempty"`
	Color      string  `json:"color,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	ZIndex     int     `json:"z_index"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	AssetRef   string  `json:"asset_ref,omitempty"`
}

// Design is a static design template as delivered by the template studio
type Design struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Format      string       `json:"format"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
	Background  string       `json:"background,omitempty"`
	Palette     []string     `json:"palette,omitempty"`
	AspectRatio string       `json:"aspect_ratio,omitempty"`
	Items       []DesignItem `json:"items"`
}

// TextItems returns only the text elements of the design
func (d *Design) TextItems() []DesignItem {
	var items []DesignItem
	for _, item := range d.Items {
		if item.Type == ItemText && item.Text != "" {
			items = append(items, item)
		}
	}
	return items
}
