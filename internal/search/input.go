package search

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Request is the JSON body of POST /kagi-search.
type Request struct {
	TargetURL     string `json:"target_url"`
	Limit         int    `json:"limit"`
	ExcludeDomain *bool  `json:"exclude_domain"`
}

func (r Request) Validate() error {
	return v.ValidateStruct(&r,
		v.Field(&r.TargetURL, v.Required, is.URL),
		v.Field(&r.Limit, v.Min(0), v.Max(100)),
	)
}
