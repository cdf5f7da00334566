package screenshot

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ScreenshotQuery is the validated parameter set of GET /screenshot.
type ScreenshotQuery struct {
	URL      string
	Width    int
	Height   int
	Quality  int
	Format   string
	FullPage bool
	UseCache bool
}

func (q ScreenshotQuery) Validate() error {
	return v.ValidateStruct(&q,
		v.Field(&q.URL, v.Required, is.URL),
		v.Field(&q.Width, v.Min(16), v.Max(4096)),
		v.Field(&q.Height, v.Min(16), v.Max(4096)),
		v.Field(&q.Quality, v.Min(1), v.Max(100)),
		v.Field(&q.Format, v.In("jpeg", "png")),
	)
}

// ScreenshotBody is the JSON body of POST /screenshot. Unset fields take
// the configured defaults.
type ScreenshotBody struct {
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FullPage bool   `json:"full_page"`
	Quality  int    `json:"quality"`
	Format   string `json:"format"`
	UseCache *bool  `json:"use_cache"`
}

func (b ScreenshotBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.URL, v.Required, is.URL),
		v.Field(&b.Width, v.Min(0), v.Max(4096)),
		v.Field(&b.Height, v.Min(0), v.Max(4096)),
		v.Field(&b.Quality, v.Min(0), v.Max(100)),
		v.Field(&b.Format, v.In("", "jpeg", "png")),
	)
}

// ThumbnailQuery is the validated parameter set of GET /screenshot/thumbnail.
type ThumbnailQuery struct {
	URL     string
	Width   int
	Height  int
	Quality int
}

func (q ThumbnailQuery) Validate() error {
	return v.ValidateStruct(&q,
		v.Field(&q.URL, v.Required, is.URL),
		v.Field(&q.Width, v.Min(16), v.Max(4096)),
		v.Field(&q.Height, v.Min(16), v.Max(4096)),
		v.Field(&q.Quality, v.Min(1), v.Max(100)),
	)
}

// FullPageQuery is the validated parameter set of GET /screenshot/full-page.
type FullPageQuery struct {
	URL     string
	Width   int
	Quality int
}

func (q FullPageQuery) Validate() error {
	return v.ValidateStruct(&q,
		v.Field(&q.URL, v.Required, is.URL),
		v.Field(&q.Width, v.Min(16), v.Max(4096)),
		v.Field(&q.Quality, v.Min(1), v.Max(100)),
	)
}
