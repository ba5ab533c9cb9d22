// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package views

import (
	_ "embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// Status is what the status page shows.
type Status interface {
	// Last returns the text of the most recent report.
	Last() string

	// Cycles returns the number of reports printed so far.
	Cycles() uint64
}

//go:embed index.gohtml
var Index string

var index = template.Must(template.New("index").Parse(Index))

type page struct {
	Label   string
	Mode    string
	Refresh int
	Cycles  uint64
	Report  string
}

// Opts configures the status pages.
type Opts struct {
	Label   string
	Mode    string
	Refresh time.Duration

	// Metrics is served at /metrics when set.
	Metrics http.Handler
}

// Handler serves the last report as a page at / and as plain text at
// /report.txt.
func Handler(s Status, opts Opts) (http.Handler, error) {
	if s == nil {
		return nil, ErrInvalidParameter
	}
	if opts.Refresh <= 0 {
		opts.Refresh = 2 * time.Second
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = index.Execute(w, page{
			Label:   opts.Label,
			Mode:    opts.Mode,
			Refresh: int(opts.Refresh.Seconds()),
			Cycles:  s.Cycles(),
			Report:  s.Last(),
		})
	})

	mux.HandleFunc("/report.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, s.Last())
	})

	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics)
	}

	return mux, nil
}
