package edgardoc

import (
	"maps"
	"slices"
	"time"
)

// Header keys consumed outside of extraction.
const (
	HeaderFiledAsOfDate        = "FILED AS OF DATE"
	HeaderSubmissionType       = "CONFORMED SUBMISSION TYPE"
	HeaderAccessionNumber      = "ACCESSION NUMBER"
	HeaderCompanyConformedName = "COMPANY CONFORMED NAME"

	HeaderSubjectCompany = "SUBJECT COMPANY"
	HeaderFiler          = "FILER"
)

// FiledAsOfLayout is the layout of the FILED AS OF DATE header value.
const FiledAsOfLayout = "20060102"

// Header is the filing-level metadata tree recovered from the <SEC-HEADER>
// block. Values are either strings or nested Headers.
type Header map[string]any

// String returns the scalar value stored under key at the top level.
func (h Header) String(key string) string {
	s, _ := h[key].(string)
	return s
}

// Section returns the nested block stored under key, or nil.
func (h Header) Section(key string) Header {
	switch v := h[key].(type) {
	case Header:
		return v
	case map[string]any:
		return Header(v)
	}
	return nil
}

// Find performs a depth-first search for key and returns the first scalar
// value found. Top-level keys are checked before nested blocks, which are
// visited in key order.
func (h Header) Find(key string) string {
	if s := h.String(key); s != "" {
		return s
	}
	for _, k := range slices.Sorted(maps.Keys(h)) {
		if sub := h.Section(k); sub != nil {
			if s := sub.Find(key); s != "" {
				return s
			}
		}
	}
	return ""
}

// CompanyName returns the conformed name of the company the filing is
// about: the SUBJECT COMPANY when present (e.g. SC 13D), then the FILER,
// then the first name found anywhere in the header.
func (h Header) CompanyName() string {
	for _, key := range []string{HeaderSubjectCompany, HeaderFiler} {
		if sub := h.Section(key); sub != nil {
			if name := sub.Find(HeaderCompanyConformedName); name != "" {
				return name
			}
		}
	}
	return h.Find(HeaderCompanyConformedName)
}

// FiledAsOf parses the FILED AS OF DATE header value.
func (h Header) FiledAsOf() (time.Time, error) {
	v := h.String(HeaderFiledAsOfDate)
	if v == "" {
		return time.Time{}, Errorf(EINVALID, "header has no %s", HeaderFiledAsOfDate)
	}
	t, err := time.Parse(FiledAsOfLayout, v)
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "invalid %s %q", HeaderFiledAsOfDate, v)
	}
	return t, nil
}
