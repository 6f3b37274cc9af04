package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(out.Backend.BaseURL), "/")

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Backend.BaseURL == "" {
		res.addErr("backend.base_url is required")
	} else {
		u, err := url.Parse(out.Backend.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("backend.base_url must be an absolute URL: %q", out.Backend.BaseURL)
		} else if u.Scheme != "https" && u.Hostname() != "localhost" && u.Hostname() != "127.0.0.1" {
			res.addWarn("backend.base_url is plain http to a non-local host; the bearer token travels in the clear.")
		}
	}

	if out.Backend.TimeoutSeconds <= 0 {
		out.Backend.TimeoutSeconds = 20
	}
	if out.Backend.ReqPerSec <= 0 {
		out.Backend.ReqPerSec = 4
	}
	if out.Backend.Burst <= 0 {
		out.Backend.Burst = 4
	}

	if out.Listing.PageSize <= 0 {
		out.Listing.PageSize = 6
	} else if out.Listing.PageSize > 100 {
		res.addWarn("listing.page_size is %d; the backend caps pages well below that.", out.Listing.PageSize)
	}

	return out, res
}
