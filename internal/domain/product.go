package domain

// Category identifies the dataset a product was loaded from.
type Category string

const (
	CategorySmartphones Category = "smartphones"
	CategoryEarphones   Category = "earphones"
	CategoryLaptops     Category = "laptops"
	CategoryNews        Category = "news"
	CategoryUsed        Category = "used"

	// CategoryAll is a listing filter value, never a product category.
	CategoryAll Category = "all"
)

// ProductCategories is the fixed load and resolution order for product
// datasets. Earlier categories shadow later ones on id collisions.
var ProductCategories = []Category{
	CategorySmartphones,
	CategoryEarphones,
	CategoryLaptops,
	CategoryUsed,
}

// SpecKeyReleaseDate is the spec label holding the release date
// (period-delimited, e.g. "2024.09").
const SpecKeyReleaseDate = "출시일"

// Product represents a single catalog entry. Category is stamped at load
// time from the source dataset, not read from the record itself.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category,omitempty"`
	Image       ImageList `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	BuyLink     string    `json:"buyLink,omitempty"`
	Price       string    `json:"price,omitempty"` // formatted string, used-market listings only
	Specs       Specs     `json:"specs,omitempty"`
}

// Thumbnail returns the canonical preview image: the first entry of the
// image list, or "" when the product has no image.
func (p Product) Thumbnail() string {
	if len(p.Image) == 0 {
		return ""
	}
	return p.Image[0]
}

// ReleaseDate returns the raw value of the release-date spec, or "" when
// the product does not carry one.
func (p Product) ReleaseDate() string {
	v, ok := p.Specs.Get(SpecKeyReleaseDate)
	if !ok {
		return ""
	}
	return v.String()
}

// NewsItem is an entry of the news dataset. News items link out to external
// articles and never participate in comparison or spec listing.
type NewsItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Link      string `json:"link,omitempty"`
}
