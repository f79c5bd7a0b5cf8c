package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/service/lookup"
)

// renderer prints lookup states as plain text.
type renderer struct {
	mu sync.Mutex
	w  io.Writer
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w}
}

// State is a lookup.Machine state hook.
func (r *renderer) State(s lookup.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch s.Kind {
	case lookup.StateIdle:
		return
	case lookup.StateNotFound:
		if s.DerivativeOf != nil {
			fmt.Fprintf(r.w, "Not found. Did you mean %q?\n", *s.DerivativeOf)
			return
		}
		fmt.Fprintln(r.w, "Not found.")
	case lookup.StateFound:
		for _, e := range s.Entries {
			r.entry(e)
		}
	}
}

func (r *renderer) entry(e domain.Entry) {
	header := e.PartOfSpeech
	if e.Transitivity != nil {
		header += " (" + strings.ToLower(*e.Transitivity) + ")"
	}
	fmt.Fprintln(r.w, header)
	if e.AudioLink != nil {
		fmt.Fprintf(r.w, "  audio: %s\n", *e.AudioLink)
	}
	for _, v := range e.OtherSpellings {
		if len(v.Regions) > 0 {
			fmt.Fprintf(r.w, "  also: %s (%s)\n", v.Text, strings.Join(v.Regions, ", "))
		} else {
			fmt.Fprintf(r.w, "  also: %s\n", v.Text)
		}
	}
	for i, s := range e.Senses {
		r.sense(fmt.Sprintf("%d.", i+1), "  ", s)
		for j, sub := range s.SubSenses {
			r.sense(fmt.Sprintf("%c.", 'a'+j%26), "     ", sub)
		}
	}
}

func (r *renderer) sense(marker, indent string, s domain.Sense) {
	var labels []string
	labels = append(labels, s.Registers...)
	labels = append(labels, s.Regions...)

	line := indent + marker + " "
	if len(labels) > 0 {
		line += "[" + strings.Join(labels, ", ") + "] "
	}
	switch {
	case s.Definition.IsCrossReference():
		line += "see: " + strings.Join(s.Definition.CrossReferenceMarkers, "; ")
	default:
		line += s.Definition.Text
	}
	fmt.Fprintln(r.w, strings.TrimRight(line, " "))

	for _, ex := range s.Examples {
		fmt.Fprintf(r.w, "%s   %q\n", indent, ex)
	}
}
