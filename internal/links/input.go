package links

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// LinksQuery is the validated parameter set of GET /links.
type LinksQuery struct {
	URL string
}

func (q LinksQuery) Validate() error {
	return v.ValidateStruct(&q,
		v.Field(&q.URL, v.Required, is.URL),
	)
}

// PathQuery is the validated parameter set of GET /autonomous-path.
type PathQuery struct {
	StartURL string
	EndURL   string
	MaxDepth int
}

func (q PathQuery) Validate() error {
	return v.ValidateStruct(&q,
		v.Field(&q.StartURL, v.Required, is.URL),
		v.Field(&q.EndURL, v.Required, is.URL),
		v.Field(&q.MaxDepth, v.Min(1), v.Max(10)),
	)
}
